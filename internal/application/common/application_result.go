package common

import "time"

type ApplicationResult struct {
	Id           string            `json:"id"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	InternshipId string            `json:"internship_id"`
	UserId       string            `json:"user_id"`
	ResumeURL    string            `json:"resume_url"`
	Status       string            `json:"status"`
	Internship   *InternshipResult `json:"internship,omitempty"`
	Applicant    *ContactResult    `json:"applicant,omitempty"`
}
