package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// View names a cached read model that clients refresh on invalidation
type View string

const (
	ViewAccounts View = "accounts"
	ViewLedger   View = "ledger"
	ViewDebts    View = "debts"
	ViewContacts View = "contacts"
)

// Invalidator notifies observers that views are stale. Delivery is best
// effort: callers log a returned error and never fail the operation on it.
type Invalidator interface {
	Invalidate(ctx context.Context, views ...View) error
}

// InvalidationEvent is the payload published for each invalidation
type InvalidationEvent struct {
	EventID    string    `json:"eventId"`
	Views      []View    `json:"views"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewInvalidationEvent builds an event with a fresh id
func NewInvalidationEvent(views []View, now time.Time) InvalidationEvent {
	return InvalidationEvent{
		EventID:    uuid.NewString(),
		Views:      views,
		OccurredAt: now.UTC(),
	}
}

// LogInvalidator records invalidations in the log, for deployments without a broker
type LogInvalidator struct {
	logger *slog.Logger
}

// NewLogInvalidator creates a new log invalidator
func NewLogInvalidator(logger *slog.Logger) *LogInvalidator {
	return &LogInvalidator{logger: logger}
}

// Invalidate logs the invalidated views
func (l *LogInvalidator) Invalidate(ctx context.Context, views ...View) error {
	event := NewInvalidationEvent(views, time.Now())
	l.logger.InfoContext(ctx, "views invalidated", "eventId", event.EventID, "views", views)
	return nil
}

// Notify calls inv and logs a failure instead of returning it
func Notify(ctx context.Context, inv Invalidator, logger *slog.Logger, views ...View) {
	if inv == nil {
		return
	}
	if err := inv.Invalidate(ctx, views...); err != nil {
		logger.WarnContext(ctx, "failed to invalidate views", "views", views, "error", err)
	}
}
