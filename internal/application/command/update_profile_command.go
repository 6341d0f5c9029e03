package command

import "internship-service/internal/application/common"

type UpdateProfileCommand struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type UpdateProfileCommandResult struct {
	Result *common.UserResult `json:"result"`
}
