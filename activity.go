package auth

import (
	"context"
	"time"
)

// ActivityEventType tags auditable auth operations.
type ActivityEventType string

const (
	ActivityEventSocialLogin ActivityEventType = "auth.social.login"
	ActivityEventLogout      ActivityEventType = "auth.logout"
	ActivityEventWithdraw    ActivityEventType = "auth.withdraw"
)

// ActorRef identifies who performed an audited operation.
type ActorRef struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// ActivityEvent is a single audit record. Metadata must never contain token
// material.
type ActivityEvent struct {
	EventType  ActivityEventType `json:"event_type"`
	UserID     string            `json:"user_id"`
	Actor      ActorRef          `json:"actor"`
	OccurredAt time.Time         `json:"occurred_at"`
	Metadata   map[string]any    `json:"metadata,omitempty"`
}

// ActivitySink receives audit events. Callers treat sink failures as
// non-fatal and only log them.
type ActivitySink interface {
	Record(ctx context.Context, event ActivityEvent) error
}

// NoopActivitySink discards events.
type NoopActivitySink struct{}

func (NoopActivitySink) Record(context.Context, ActivityEvent) error {
	return nil
}
