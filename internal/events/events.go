package events

import (
	"context"
	"time"
)

const (
	SubjectApplicationSubmitted     = "internships.application.submitted"
	SubjectApplicationStatusChanged = "internships.application.status_changed"
	SubjectInternshipDeleted        = "internships.internship.deleted"
)

type ApplicationSubmitted struct {
	ApplicationID string    `json:"application_id"`
	InternshipID  string    `json:"internship_id"`
	UserID        string    `json:"user_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type ApplicationStatusChanged struct {
	ApplicationID   string    `json:"application_id"`
	InternshipID    string    `json:"internship_id"`
	InternshipTitle string    `json:"internship_title"`
	Company         string    `json:"company"`
	UserID          string    `json:"user_id"`
	ApplicantName   string    `json:"applicant_name"`
	ApplicantEmail  string    `json:"applicant_email"`
	Status          string    `json:"status"`
	OccurredAt      time.Time `json:"occurred_at"`
}

type InternshipDeleted struct {
	InternshipID        string    `json:"internship_id"`
	DeletedApplications int64     `json:"deleted_applications"`
	OccurredAt          time.Time `json:"occurred_at"`
}

// Publisher delivers domain events. Delivery is best effort.
type Publisher interface {
	Publish(ctx context.Context, subject string, event any) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error {
	return nil
}
