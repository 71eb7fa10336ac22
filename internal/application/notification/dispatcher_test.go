package notification

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainnotif "github.com/oysterbuild/backend/internal/domain/notification"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

type mockOutboxRepo struct {
	ListPendingFunc func(ctx context.Context, limit int) ([]*domainnotif.Outbox, error)
	updated         []*domainnotif.Outbox
}

func (m *mockOutboxRepo) Create(ctx context.Context, intent *domainnotif.Outbox) error {
	return nil
}

func (m *mockOutboxRepo) ListPending(ctx context.Context, limit int) ([]*domainnotif.Outbox, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockOutboxRepo) Update(ctx context.Context, intent *domainnotif.Outbox) error {
	m.updated = append(m.updated, intent)
	return nil
}

type mockSender struct {
	SendFunc func(ctx context.Context, recipient, subject, template string, templateCtx map[string]any) error
	sent     []string
}

func (m *mockSender) Send(ctx context.Context, recipient, subject, template string, templateCtx map[string]any) error {
	if m.SendFunc != nil {
		if err := m.SendFunc(ctx, recipient, subject, template, templateCtx); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, recipient)
	return nil
}

func pendingIntent(t *testing.T, recipient string) *domainnotif.Outbox {
	t.Helper()
	intent, err := domainnotif.NewOutbox(recipient, "Payment Confirmation", domainnotif.TemplatePaymentConfirmation, map[string]any{
		"first_name": "Ada",
	})
	require.NoError(t, err)
	intent.ID = 1
	return intent
}

func TestDispatcher_MarksSent(t *testing.T) {
	intent := pendingIntent(t, "owner@example.com")
	repo := &mockOutboxRepo{
		ListPendingFunc: func(ctx context.Context, limit int) ([]*domainnotif.Outbox, error) {
			return []*domainnotif.Outbox{intent}, nil
		},
	}
	sender := &mockSender{}

	d := NewDispatcher(repo, sender, logger.NewLogger())
	require.NoError(t, d.Execute(context.Background()))

	assert.Equal(t, []string{"owner@example.com"}, sender.sent)
	require.Len(t, repo.updated, 1)
	assert.Equal(t, domainnotif.StatusSent, repo.updated[0].Status)
	assert.Equal(t, 1, repo.updated[0].Attempts)
}

func TestDispatcher_FailureDoesNotAbortBatch(t *testing.T) {
	bad := pendingIntent(t, "bad@example.com")
	good := pendingIntent(t, "good@example.com")
	good.ID = 2

	repo := &mockOutboxRepo{
		ListPendingFunc: func(ctx context.Context, limit int) ([]*domainnotif.Outbox, error) {
			return []*domainnotif.Outbox{bad, good}, nil
		},
	}
	sender := &mockSender{
		SendFunc: func(ctx context.Context, recipient, subject, template string, templateCtx map[string]any) error {
			if recipient == "bad@example.com" {
				return fmt.Errorf("smtp refused")
			}
			return nil
		},
	}

	d := NewDispatcher(repo, sender, logger.NewLogger())
	require.NoError(t, d.Execute(context.Background()))

	assert.Equal(t, []string{"good@example.com"}, sender.sent)
	require.Len(t, repo.updated, 2)
	assert.Equal(t, domainnotif.StatusPending, bad.Status)
	assert.Equal(t, 1, bad.Attempts)
	assert.Equal(t, "smtp refused", bad.LastError)
	assert.Equal(t, domainnotif.StatusSent, good.Status)
}

func TestDispatcher_ParksAfterMaxAttempts(t *testing.T) {
	intent := pendingIntent(t, "owner@example.com")
	intent.Attempts = 4

	repo := &mockOutboxRepo{
		ListPendingFunc: func(ctx context.Context, limit int) ([]*domainnotif.Outbox, error) {
			return []*domainnotif.Outbox{intent}, nil
		},
	}
	sender := &mockSender{
		SendFunc: func(ctx context.Context, recipient, subject, template string, templateCtx map[string]any) error {
			return fmt.Errorf("smtp refused")
		},
	}

	d := NewDispatcher(repo, sender, logger.NewLogger())
	require.NoError(t, d.Execute(context.Background()))

	assert.Equal(t, domainnotif.StatusFailed, intent.Status)
	assert.Equal(t, 5, intent.Attempts)
}
