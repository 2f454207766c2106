package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	auth "github.com/zipple/go-auth"
)

// ActivityModel is the Bun model for audit events.
type ActivityModel struct {
	bun.BaseModel `bun:"table:auth_activity"`

	ID         uuid.UUID      `bun:"id,pk,nullzero,type:uuid"`
	EventType  string         `bun:"event_type,notnull"`
	UserID     string         `bun:"user_id,notnull"`
	ActorType  string         `bun:"actor_type"`
	ActorID    string         `bun:"actor_id"`
	OccurredAt time.Time      `bun:"occurred_at,notnull"`
	Metadata   map[string]any `bun:"metadata,type:jsonb"`
}

// ActivityLog implements auth.ActivitySink using Bun. Events are append
// only; nothing in the login path reads them back.
type ActivityLog struct {
	db *bun.DB
}

// NewActivityLog creates a new activity sink.
func NewActivityLog(db *bun.DB) *ActivityLog {
	return &ActivityLog{db: db}
}

// Record implements auth.ActivitySink.
func (l *ActivityLog) Record(ctx context.Context, event auth.ActivityEvent) error {
	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	model := &ActivityModel{
		ID:         uuid.New(),
		EventType:  string(event.EventType),
		UserID:     event.UserID,
		ActorType:  event.Actor.Type,
		ActorID:    event.Actor.ID,
		OccurredAt: occurredAt,
		Metadata:   event.Metadata,
	}

	_, err := l.db.NewInsert().Model(model).Exec(ctx)
	return err
}
