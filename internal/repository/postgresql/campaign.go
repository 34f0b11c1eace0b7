package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/campaign"
	"github.com/shiftpoint/attendance-backend-go/internal/pkg/database"
)

type campaignRepositoryImpl struct {
	db *database.DB
}

func NewCampaignRepository(db *database.DB) campaign.CampaignRepository {
	return &campaignRepositoryImpl{db: db}
}

const campaignColumns = `
	id, name, work_day_start, work_day_end, lunch_start, lunch_end,
	tea_breaks, leave_approver_email, escalation_email, timezone,
	created_at, updated_at
`

func scanCampaign(row pgx.Row) (campaign.Campaign, error) {
	var c campaign.Campaign
	err := row.Scan(
		&c.ID, &c.Name, &c.WorkDayStart, &c.WorkDayEnd, &c.LunchStart, &c.LunchEnd,
		&c.TeaBreaks, &c.LeaveApproverEmail, &c.EscalationEmail, &c.Timezone,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func collectCampaigns(rows pgx.Rows) ([]campaign.Campaign, error) {
	defer rows.Close()
	var campaigns []campaign.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *campaignRepositoryImpl) Create(ctx context.Context, c campaign.Campaign) (campaign.Campaign, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO campaigns (name, work_day_start, work_day_end, lunch_start, lunch_end,
			tea_breaks, leave_approver_email, escalation_email, timezone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		c.Name, c.WorkDayStart, c.WorkDayEnd, c.LunchStart, c.LunchEnd,
		c.TeaBreaks, c.LeaveApproverEmail, c.EscalationEmail, c.Timezone,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return campaign.Campaign{}, err
	}
	return c, nil
}

func (r *campaignRepositoryImpl) GetByID(ctx context.Context, id string) (campaign.Campaign, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT` + campaignColumns + `FROM campaigns WHERE id = $1`

	c, err := scanCampaign(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return campaign.Campaign{}, campaign.ErrCampaignNotFound
		}
		return campaign.Campaign{}, err
	}
	return c, nil
}

func (r *campaignRepositoryImpl) Update(ctx context.Context, c campaign.Campaign) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE campaigns
		SET name = $2, work_day_start = $3, work_day_end = $4,
			lunch_start = $5, lunch_end = $6, tea_breaks = $7,
			leave_approver_email = $8, escalation_email = $9,
			timezone = $10, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		c.ID, c.Name, c.WorkDayStart, c.WorkDayEnd,
		c.LunchStart, c.LunchEnd, c.TeaBreaks,
		c.LeaveApproverEmail, c.EscalationEmail, c.Timezone)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return campaign.ErrCampaignNotFound
	}
	return nil
}

func (r *campaignRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return campaign.ErrCampaignNotFound
	}
	return nil
}

func (r *campaignRepositoryImpl) List(ctx context.Context) ([]campaign.Campaign, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT` + campaignColumns + `FROM campaigns ORDER BY name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectCampaigns(rows)
}

func (r *campaignRepositoryImpl) ListScheduled(ctx context.Context) ([]campaign.Campaign, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT` + campaignColumns + `FROM campaigns WHERE work_day_start IS NOT NULL ORDER BY name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectCampaigns(rows)
}
