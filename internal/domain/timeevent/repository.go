package timeevent

import (
	"context"
	"time"
)

type TimeEventRepository interface {
	Create(ctx context.Context, e TimeEvent) (TimeEvent, error)
	ListForUser(ctx context.Context, userID string, from, to time.Time) ([]TimeEvent, error)

	// ListForUsers bulk-fetches events for many users inside [from, to),
	// joined with their event type name and break flag, ordered by
	// occurred_at ascending.
	ListForUsers(ctx context.Context, userIDs []string, from, to time.Time) ([]TimeEvent, error)

	// HasWorkStart reports whether the user already logged a "Work Start"
	// event inside [from, to).
	HasWorkStart(ctx context.Context, userID string, from, to time.Time) (bool, error)
}
