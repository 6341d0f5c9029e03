package entities

import (
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"internship-service/internal/apperr"
)

// BcryptCost is the work factor for stored password hashes.
const BcryptCost = 12

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleApplicant Role = "applicant"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleApplicant
}

// ParseRole maps an empty value to RoleApplicant.
func ParseRole(value string) (Role, error) {
	if strings.TrimSpace(value) == "" {
		return RoleApplicant, nil
	}
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	if !role.Valid() {
		return "", apperr.NewValidationError("invalid role", map[string]string{"role": "must be admin or applicant"})
	}
	return role, nil
}

type User struct {
	Id        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
	Email     string
	Password  string
	Role      Role
	Bookmarks []string
}

func NewUser(name, email, password string, role Role) *User {
	now := time.Now().UTC()
	return &User{
		CreatedAt: now,
		UpdatedAt: now,
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		Password:  password,
		Role:      role,
		Bookmarks: make([]string, 0),
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) validate() error {
	fields := map[string]string{}
	if u.Name == "" {
		fields["name"] = "required"
	}
	if u.Email == "" {
		fields["email"] = "required"
	} else if _, err := mail.ParseAddress(u.Email); err != nil {
		fields["email"] = "invalid"
	}
	if u.Password == "" {
		fields["password"] = "required"
	} else if len(u.Password) > MaxPasswordBytes {
		fields["password"] = "must be at most 72 bytes"
	}
	if !u.Role.Valid() {
		fields["role"] = "must be admin or applicant"
	}
	if u.CreatedAt.After(u.UpdatedAt) {
		fields["updated_at"] = "must not precede created_at"
	}
	if len(fields) > 0 {
		return apperr.NewValidationError("invalid user", fields)
	}
	return nil
}

func (u *User) HashPassword() error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), BcryptCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

func (u *User) HasBookmark(internshipID string) bool {
	for _, id := range u.Bookmarks {
		if id == internshipID {
			return true
		}
	}
	return false
}

// UpdateProfile always replaces the name; an empty email keeps the current one.
func (u *User) UpdateProfile(name, email string) error {
	u.Name = strings.TrimSpace(name)
	if normalized := NormalizeEmail(email); normalized != "" {
		u.Email = normalized
	}
	u.UpdatedAt = time.Now().UTC()
	return u.validate()
}
