package notify

import (
	"context"
	"time"
)

// Webhook posts notifications as JSON to a generic HTTP endpoint.
type Webhook struct {
	URL string
}

type webhookPayload struct {
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (w *Webhook) Name() string { return "webhook" }

func (w *Webhook) Send(ctx context.Context, title, message string) error {
	return postJSON(ctx, w.URL, webhookPayload{
		Title:     title,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}
