package postgresql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/timeevent"
	"github.com/shiftpoint/attendance-backend-go/internal/pkg/database"
)

type timeEventRepositoryImpl struct {
	db *database.DB
}

func NewTimeEventRepository(db *database.DB) timeevent.TimeEventRepository {
	return &timeEventRepositoryImpl{db: db}
}

// Insert only. Time events are immutable facts; there is no update or
// delete path.
func (r *timeEventRepositoryImpl) Create(ctx context.Context, e timeevent.TimeEvent) (timeevent.TimeEvent, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO time_events (user_id, campaign_id, event_type_id, occurred_at, source, late_minutes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := q.QueryRow(ctx, query,
		e.UserID, e.CampaignID, e.EventTypeID, e.OccurredAt, e.Source, e.LateMinutes,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return timeevent.TimeEvent{}, err
	}
	return e, nil
}

const timeEventSelect = `
	SELECT te.id, te.user_id, te.campaign_id, te.event_type_id,
		   te.occurred_at, te.source, te.late_minutes, te.created_at,
		   et.name AS event_type_name, et.is_break AS event_type_is_break
	FROM time_events te
	JOIN event_types et ON et.id = te.event_type_id
`

func collectTimeEvents(rows pgx.Rows) ([]timeevent.TimeEvent, error) {
	defer rows.Close()
	var events []timeevent.TimeEvent
	for rows.Next() {
		var e timeevent.TimeEvent
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.CampaignID, &e.EventTypeID,
			&e.OccurredAt, &e.Source, &e.LateMinutes, &e.CreatedAt,
			&e.EventTypeName, &e.EventTypeIsBreak); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *timeEventRepositoryImpl) ListForUser(ctx context.Context, userID string, from, to time.Time) ([]timeevent.TimeEvent, error) {
	q := GetQuerier(ctx, r.db)
	query := timeEventSelect + `
		WHERE te.user_id = $1 AND te.occurred_at >= $2 AND te.occurred_at < $3
		ORDER BY te.occurred_at
	`
	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	return collectTimeEvents(rows)
}

func (r *timeEventRepositoryImpl) ListForUsers(ctx context.Context, userIDs []string, from, to time.Time) ([]timeevent.TimeEvent, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)
	query := timeEventSelect + `
		WHERE te.user_id = ANY($1) AND te.occurred_at >= $2 AND te.occurred_at < $3
		ORDER BY te.user_id, te.occurred_at
	`
	rows, err := q.Query(ctx, query, userIDs, from, to)
	if err != nil {
		return nil, err
	}
	return collectTimeEvents(rows)
}

func (r *timeEventRepositoryImpl) HasWorkStart(ctx context.Context, userID string, from, to time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM time_events te
			JOIN event_types et ON et.id = te.event_type_id
			WHERE te.user_id = $1
			  AND te.occurred_at >= $2 AND te.occurred_at < $3
			  AND et.name LIKE '%Work Start%'
		)
	`
	var exists bool
	if err := q.QueryRow(ctx, query, userID, from, to).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
