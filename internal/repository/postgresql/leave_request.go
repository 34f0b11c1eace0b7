package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/leave"
	"github.com/shiftpoint/attendance-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestSelect = `
	SELECT lr.id, lr.user_id, lr.campaign_id, lr.leave_type_id,
		   lr.start_date, lr.end_date, lr.duration_type, lr.days,
		   lr.reason, lr.status, lr.approved_by, lr.approved_at,
		   lr.created_at, lr.updated_at,
		   lt.name AS leave_type_name, u.full_name AS user_name
	FROM leave_requests lr
	JOIN leave_types lt ON lt.id = lr.leave_type_id
	JOIN users u ON u.id = lr.user_id
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.UserID, &lr.CampaignID, &lr.LeaveTypeID,
		&lr.StartDate, &lr.EndDate, &lr.DurationType, &lr.Days,
		&lr.Reason, &lr.Status, &lr.ApprovedBy, &lr.ApprovedAt,
		&lr.CreatedAt, &lr.UpdatedAt,
		&lr.LeaveTypeName, &lr.UserName,
	)
	return lr, err
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	defer rows.Close()
	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, lr leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_requests (user_id, campaign_id, leave_type_id, start_date, end_date,
			duration_type, days, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		lr.UserID, lr.CampaignID, lr.LeaveTypeID, lr.StartDate, lr.EndDate,
		lr.DurationType, lr.Days, lr.Reason, lr.Status,
	).Scan(&lr.ID, &lr.CreatedAt, &lr.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	lr, err := scanLeaveRequest(q.QueryRow(ctx, leaveRequestSelect+`WHERE lr.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, lr leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_requests
		SET status = $2, approved_by = $3, approved_at = $4, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, lr.ID, lr.Status, lr.ApprovedBy, lr.ApprovedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

func (r *leaveRequestRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, leaveRequestSelect+`WHERE lr.user_id = $1 ORDER BY lr.start_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collectLeaveRequests(rows)
}

func (r *leaveRequestRepositoryImpl) ListByStatus(ctx context.Context, status leave.LeaveRequestStatus) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, leaveRequestSelect+`WHERE lr.status = $1 ORDER BY lr.created_at`, status)
	if err != nil {
		return nil, err
	}
	return collectLeaveRequests(rows)
}

func (r *leaveRequestRepositoryImpl) CheckOverlapping(ctx context.Context, userID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE user_id = $1
			  AND status IN ('PENDING', 'APPROVED')
			  AND start_date <= $3 AND end_date >= $2
		)
	`
	var exists bool
	if err := q.QueryRow(ctx, query, userID, start, end).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *leaveRequestRepositoryImpl) ListApprovedOverlapping(ctx context.Context, userIDs []string, from, to time.Time) ([]leave.LeaveRequest, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)
	query := leaveRequestSelect + `
		WHERE lr.user_id = ANY($1)
		  AND lr.status = 'APPROVED'
		  AND lr.start_date <= $3 AND lr.end_date >= $2
		ORDER BY lr.user_id, lr.start_date
	`
	rows, err := q.Query(ctx, query, userIDs, from, to)
	if err != nil {
		return nil, err
	}
	return collectLeaveRequests(rows)
}
