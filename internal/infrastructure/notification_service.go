package infrastructure

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"
	"internship-service/internal/events"
)

// NotificationService emails applicants when a decision is made on their application.
type NotificationService struct {
	sender string
	client *resend.Client
}

func NewNotificationService(apiKey, sender string) *NotificationService {
	// Log configuration (without exposing the full API key)
	maskedAPIKey := ""
	if len(apiKey) > 8 {
		maskedAPIKey = apiKey[:4] + "****" + apiKey[len(apiKey)-4:]
	}
	log.Info().Str("api_key", maskedAPIKey).Str("sender", sender).Msg("Notification service configured")

	var client *resend.Client
	if apiKey != "" && sender != "" {
		client = resend.NewClient(apiKey)
	}
	return &NotificationService{sender: sender, client: client}
}

func (n *NotificationService) Enabled() bool {
	return n.client != nil
}

func (n *NotificationService) NotifyStatusChanged(ctx context.Context, event events.ApplicationStatusChanged) error {
	if n.client == nil {
		return nil
	}
	if event.ApplicantEmail == "" {
		return errors.New("status change event has no applicant email")
	}

	subject, text := statusChangedMessage(event)
	params := &resend.SendEmailRequest{
		From:    n.sender,
		To:      []string{event.ApplicantEmail},
		Subject: subject,
		Text:    text,
	}

	response, err := n.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return err
	}

	log.Info().Str("email_id", response.Id).Str("application_id", event.ApplicationID).Msg("Status email sent")
	return nil
}

func statusChangedMessage(event events.ApplicationStatusChanged) (string, string) {
	name := event.ApplicantName
	if name == "" {
		name = "there"
	}
	subject := fmt.Sprintf("Your application for %s was %s", event.InternshipTitle, event.Status)
	text := fmt.Sprintf("Hi %s,\n\nYour application for %s at %s has been %s.\n",
		name, event.InternshipTitle, event.Company, event.Status)
	return subject, text
}
