package command

import "internship-service/internal/application/common"

type SubmitApplicationCommand struct {
	InternshipId string `json:"internship_id"`
	ResumeURL    string `json:"resume_url"`
}

type SubmitApplicationCommandResult struct {
	Result *common.ApplicationResult `json:"result"`
}

type WithdrawApplicationCommand struct {
	Id string `json:"id"`
}

type UpdateApplicationStatusCommand struct {
	Id     string `json:"-"`
	Status string `json:"status"`
}

type UpdateApplicationStatusCommandResult struct {
	Result *common.ApplicationResult `json:"result"`
}
