package command

import "internship-service/internal/application/common"

type CreateUserCommand struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type CreateUserCommandResult struct {
	Result *common.UserResult `json:"result"`
}
