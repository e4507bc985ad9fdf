package service

import (
	"context"
)

// EmailNotification is the payload submitted to the mail queue.
type EmailNotification struct {
	Subject   string `json:"subject"`
	Recipient string `json:"recipient"`
	Body      string `json:"body"`
	RequestID string `json:"request_id,omitempty"` // For distributed tracing
}

// Notifier defines the interface for submitting notifications to an external
// task queue. Submissions are best-effort: callers fire and forget, and
// at-least-once delivery is the queue's responsibility, not the caller's.
type Notifier interface {
	// Notify submits an email notification for asynchronous delivery.
	Notify(ctx context.Context, notification *EmailNotification) error

	// Close releases any resources held by the notifier.
	Close() error
}
