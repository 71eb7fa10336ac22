// Package notification models the transactional outbox. Notification intents
// are written in the same transaction as the state change that triggers them
// and dispatched best-effort by a scheduler job, so delivery failures can
// never roll back or block the primary operation.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusSent    Status = "SENT"
	StatusFailed  Status = "FAILED"
)

// Template names rendered by the email sender.
const (
	TemplatePaymentConfirmation = "payment_confirmation"
	TemplateExpirationReminder  = "plan_expiration_reminder"
)

// Outbox is one queued notification intent. Payload carries the template
// context as JSON.
type Outbox struct {
	ID         uint
	Recipient  string
	Subject    string
	Template   string
	Payload    json.RawMessage
	Status     Status
	Attempts   int
	LastError  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DispatchAt time.Time
}

// NewOutbox builds a pending intent for the given template and context.
func NewOutbox(recipient, subject, template string, context map[string]any) (*Outbox, error) {
	if recipient == "" {
		return nil, fmt.Errorf("notification recipient is required")
	}
	if template == "" {
		return nil, fmt.Errorf("notification template is required")
	}

	payload, err := json.Marshal(context)
	if err != nil {
		return nil, fmt.Errorf("marshal notification payload: %w", err)
	}

	now := time.Now().UTC()
	return &Outbox{
		Recipient:  recipient,
		Subject:    subject,
		Template:   template,
		Payload:    payload,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
		DispatchAt: now,
	}, nil
}

// MarkSent records a successful delivery.
func (o *Outbox) MarkSent() {
	o.Status = StatusSent
	o.Attempts++
	o.LastError = ""
	o.UpdatedAt = time.Now().UTC()
}

// MarkFailed records a delivery failure. Intents are retried until the
// attempt cap, then parked as FAILED.
func (o *Outbox) MarkFailed(err error, maxAttempts int) {
	o.Attempts++
	if err != nil {
		o.LastError = err.Error()
	}
	if o.Attempts >= maxAttempts {
		o.Status = StatusFailed
	}
	o.UpdatedAt = time.Now().UTC()
}

type Repository interface {
	Create(ctx context.Context, intent *Outbox) error
	ListPending(ctx context.Context, limit int) ([]*Outbox, error)
	Update(ctx context.Context, intent *Outbox) error
}

// Sender delivers a rendered notification. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, recipient, subject, template string, context map[string]any) error
}
