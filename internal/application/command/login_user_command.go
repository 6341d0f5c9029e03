package command

import "internship-service/internal/application/common"

type LoginUserCommand struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginUserCommandResult struct {
	Token     string             `json:"token"`
	ExpiresAt int64              `json:"expires_at"`
	User      *common.UserResult `json:"user"`
}
