package entities

import (
	"strings"
	"time"

	"internship-service/internal/apperr"
)

type ApplicationStatus string

// Only these three statuses are persisted. An intermediate review state would be added here.
const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}

// ParseDecision accepts only the statuses an admin may assign.
func ParseDecision(value string) (ApplicationStatus, error) {
	status := ApplicationStatus(strings.ToLower(strings.TrimSpace(value)))
	if !status.IsTerminal() {
		return "", apperr.NewValidationError("invalid status", map[string]string{"status": "must be accepted or rejected"})
	}
	return status, nil
}

type Application struct {
	Id           string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	InternshipID string
	UserID       string
	ResumeURL    string
	Status       ApplicationStatus
}

func NewApplication(internshipID, userID, resumeURL string) (*Application, error) {
	now := time.Now().UTC()
	app := &Application{
		CreatedAt:    now,
		UpdatedAt:    now,
		InternshipID: internshipID,
		UserID:       userID,
		ResumeURL:    strings.TrimSpace(resumeURL),
		Status:       ApplicationStatusPending,
	}
	fields := map[string]string{}
	if app.InternshipID == "" {
		fields["internship_id"] = "required"
	}
	if app.UserID == "" {
		fields["user_id"] = "required"
	}
	if app.ResumeURL == "" {
		fields["resume_url"] = "required"
	}
	if len(fields) > 0 {
		return nil, apperr.NewValidationError("invalid application", fields)
	}
	return app, nil
}

func (a *Application) IsOwnedBy(userID string) bool {
	return a.UserID != "" && a.UserID == userID
}

func (a *Application) CanWithdraw() bool {
	return a.Status == ApplicationStatusPending
}
