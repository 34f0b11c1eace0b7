package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/eventtype"
	"github.com/shiftpoint/attendance-backend-go/internal/pkg/database"
)

type eventTypeRepositoryImpl struct {
	db *database.DB
}

func NewEventTypeRepository(db *database.DB) eventtype.EventTypeRepository {
	return &eventTypeRepositoryImpl{db: db}
}

func (r *eventTypeRepositoryImpl) Create(ctx context.Context, et eventtype.EventType) (eventtype.EventType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO event_types (name, category, is_paid, is_break, campaign_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		et.Name, et.Category, et.IsPaid, et.IsBreak, et.CampaignID,
	).Scan(&et.ID, &et.CreatedAt, &et.UpdatedAt)
	if err != nil {
		return eventtype.EventType{}, err
	}
	return et, nil
}

func (r *eventTypeRepositoryImpl) GetByID(ctx context.Context, id string) (eventtype.EventType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, category, is_paid, is_break, campaign_id, created_at, updated_at
		FROM event_types
		WHERE id = $1
	`
	var et eventtype.EventType
	err := q.QueryRow(ctx, query, id).Scan(
		&et.ID, &et.Name, &et.Category, &et.IsPaid, &et.IsBreak,
		&et.CampaignID, &et.CreatedAt, &et.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return eventtype.EventType{}, eventtype.ErrEventTypeNotFound
		}
		return eventtype.EventType{}, err
	}
	return et, nil
}

func (r *eventTypeRepositoryImpl) Update(ctx context.Context, et eventtype.EventType) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE event_types
		SET name = $2, category = $3, is_paid = $4, is_break = $5,
			campaign_id = $6, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		et.ID, et.Name, et.Category, et.IsPaid, et.IsBreak, et.CampaignID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return eventtype.ErrEventTypeNotFound
	}
	return nil
}

func (r *eventTypeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM event_types WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return eventtype.ErrEventTypeNotFound
	}
	return nil
}

func (r *eventTypeRepositoryImpl) ListVisible(ctx context.Context, campaignID *string) ([]eventtype.EventType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, category, is_paid, is_break, campaign_id, created_at, updated_at
		FROM event_types
		WHERE campaign_id IS NULL OR campaign_id = $1
		ORDER BY category, name
	`
	rows, err := q.Query(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []eventtype.EventType
	for rows.Next() {
		var et eventtype.EventType
		if err := rows.Scan(
			&et.ID, &et.Name, &et.Category, &et.IsPaid, &et.IsBreak,
			&et.CampaignID, &et.CreatedAt, &et.UpdatedAt); err != nil {
			return nil, err
		}
		types = append(types, et)
	}
	return types, rows.Err()
}
