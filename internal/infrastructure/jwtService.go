package infrastructure

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"internship-service/internal/application/session"
	"internship-service/internal/domain/entities"
)

type sessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues signed session tokens and resolves them back into sessions.
// When Redis is available every issued token is also recorded there, so logout can revoke it.
type JWTService struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
	store     *RedisService
}

func NewJWTService(secretKey, issuer string, ttl time.Duration, store *RedisService) *JWTService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if store == nil {
		store = &RedisService{}
	}
	return &JWTService{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		ttl:       ttl,
		store:     store,
	}
}

func (j *JWTService) GenerateToken(s *session.Session) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(j.ttl)
	claims := sessionClaims{
		UserID: s.UserID,
		Email:  s.Email,
		Name:   s.Name,
		Role:   string(s.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (j *JWTService) IssueToken(ctx context.Context, s *session.Session) (string, time.Time, error) {
	token, expiresAt, err := j.GenerateToken(s)
	if err != nil {
		return "", time.Time{}, err
	}
	if err := j.store.SetToken(ctx, token, s.UserID, j.ttl); err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func (j *JWTService) RevokeToken(ctx context.Context, token string) error {
	return j.store.DeleteToken(ctx, token)
}

func (j *JWTService) ParseToken(tokenString string) (*session.Session, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(j.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	role := entities.Role(claims.Role)
	if claims.UserID == "" || !role.Valid() {
		return nil, errors.New("token carries no valid session")
	}
	return &session.Session{
		UserID: claims.UserID,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   role,
	}, nil
}

// Resolve reports false for invalid, expired or revoked tokens.
func (j *JWTService) Resolve(ctx context.Context, tokenString string) (*session.Session, bool) {
	s, err := j.ParseToken(tokenString)
	if err != nil {
		log.Debug().Err(err).Msg("Rejected session token")
		return nil, false
	}
	if !j.store.Enabled() {
		return s, true
	}

	userID, err := j.store.GetToken(ctx, tokenString)
	if err != nil || userID != s.UserID {
		return nil, false
	}
	return s, true
}
