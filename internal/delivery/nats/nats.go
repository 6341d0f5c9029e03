package nats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
	"internship-service/internal/events"
)

const (
	queueGroup     = "internship-service"
	handlerTimeout = 10 * time.Second
	healthSubject  = "internships.health"
)

type StatusNotifier interface {
	NotifyStatusChanged(ctx context.Context, event events.ApplicationStatusChanged) error
}

// Handler consumes domain events. Queue subscriptions spread the work across instances.
type Handler struct {
	notifier StatusNotifier
	subs     []*nats.Subscription
}

func NewHandler(nc *nats.Conn, notifier StatusNotifier) (*Handler, error) {
	h := &Handler{notifier: notifier}

	sub, err := nc.QueueSubscribe(events.SubjectApplicationStatusChanged, queueGroup, h.handleStatusChanged)
	if err != nil {
		return nil, err
	}
	h.subs = append(h.subs, sub)

	sub, err = nc.Subscribe(healthSubject, func(msg *nats.Msg) {
		_ = msg.Respond([]byte(`{"status":"healthy","timestamp":"` + time.Now().UTC().Format(time.RFC3339) + `"}`))
	})
	if err != nil {
		h.Unsubscribe()
		return nil, err
	}
	h.subs = append(h.subs, sub)

	return h, nil
}

func (h *Handler) Unsubscribe() {
	for _, sub := range h.subs {
		if err := sub.Unsubscribe(); err != nil {
			log.Warn().Err(err).Str("subject", sub.Subject).Msg("Failed to unsubscribe")
		}
	}
	h.subs = nil
}

func (h *Handler) handleStatusChanged(msg *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	var event events.ApplicationStatusChanged
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		log.Warn().Err(err).Str("subject", msg.Subject).Msg("Dropping malformed event")
		return
	}

	if err := h.notifier.NotifyStatusChanged(ctx, event); err != nil {
		log.Error().Err(err).Str("application_id", event.ApplicationID).Msg("Failed to notify applicant")
	}
}
