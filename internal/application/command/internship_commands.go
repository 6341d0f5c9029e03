package command

import "internship-service/internal/application/common"

type CreateInternshipCommand struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Company     string   `json:"company"`
	Stipend     int64    `json:"stipend"`
	Location    string   `json:"location"`
	Type        string   `json:"type"`
	Openings    int      `json:"openings"`
	Skills      []string `json:"skills"`
}

type CreateInternshipCommandResult struct {
	Result *common.InternshipResult `json:"result"`
}

// UpdateInternshipCommand carries only the fields being changed.
type UpdateInternshipCommand struct {
	Id          string    `json:"-"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Company     *string   `json:"company,omitempty"`
	Stipend     *int64    `json:"stipend,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Type        *string   `json:"type,omitempty"`
	Openings    *int      `json:"openings,omitempty"`
	Skills      *[]string `json:"skills,omitempty"`
}

type UpdateInternshipCommandResult struct {
	Result *common.InternshipResult `json:"result"`
}

type DeleteInternshipCommand struct {
	Id string `json:"id"`
}

type DeleteInternshipCommandResult struct {
	DeletedApplications int64 `json:"deleted_applications"`
}
