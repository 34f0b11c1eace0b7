package timeevent

import "time"

// TimeEvent is an immutable clock fact. Rows are inserted once per clock
// action and never updated or deleted; they are the record of truth for
// attendance.
type TimeEvent struct {
	ID          string
	UserID      string
	CampaignID  *string
	EventTypeID string
	OccurredAt  time.Time // UTC
	Source      string
	LateMinutes *int
	CreatedAt   time.Time

	// Joined from event_types for status derivation
	EventTypeName    string
	EventTypeIsBreak bool
}
