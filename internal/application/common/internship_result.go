package common

import "time"

type InternshipResult struct {
	Id          string         `json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Company     string         `json:"company"`
	Stipend     int64          `json:"stipend"`
	Location    string         `json:"location"`
	Type        string         `json:"type"`
	Openings    int            `json:"openings"`
	Skills      []string       `json:"skills"`
	CreatedById string         `json:"created_by_id"`
	CreatedBy   *ContactResult `json:"created_by,omitempty"`
}

type StatsResult struct {
	TotalInternships     int64 `json:"total_internships"`
	TotalApplications    int64 `json:"total_applications"`
	PendingApplications  int64 `json:"pending_applications"`
	AcceptedApplications int64 `json:"accepted_applications"`
	RejectedApplications int64 `json:"rejected_applications"`
}
