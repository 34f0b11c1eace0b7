package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/leave"
	"github.com/shiftpoint/attendance-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

const leaveBalanceSelect = `
	SELECT lb.id, lb.user_id, lb.leave_type_id, lb.year,
		   lb.entitled_days, lb.used_days, lb.pending_days,
		   lb.created_at, lb.updated_at,
		   lt.name AS leave_type_name
	FROM leave_balances lb
	JOIN leave_types lt ON lt.id = lb.leave_type_id
`

func scanLeaveBalance(row pgx.Row) (leave.LeaveBalance, error) {
	var b leave.LeaveBalance
	err := row.Scan(
		&b.ID, &b.UserID, &b.LeaveTypeID, &b.Year,
		&b.EntitledDays, &b.UsedDays, &b.PendingDays,
		&b.CreatedAt, &b.UpdatedAt,
		&b.LeaveTypeName,
	)
	return b, err
}

// Upsert resets used and pending when replacing an existing row; it is
// the admin entitlement surface, not the mutation path.
func (r *leaveBalanceRepositoryImpl) Upsert(ctx context.Context, b leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_balances (user_id, leave_type_id, year, entitled_days, used_days, pending_days)
		VALUES ($1, $2, $3, $4, 0, 0)
		ON CONFLICT (user_id, leave_type_id, year)
		DO UPDATE SET entitled_days = EXCLUDED.entitled_days, updated_at = NOW()
		RETURNING id, used_days, pending_days, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		b.UserID, b.LeaveTypeID, b.Year, b.EntitledDays,
	).Scan(&b.ID, &b.UsedDays, &b.PendingDays, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return leave.LeaveBalance{}, err
	}
	return b, nil
}

func (r *leaveBalanceRepositoryImpl) GetForUpdate(ctx context.Context, userID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, user_id, leave_type_id, year,
			   entitled_days, used_days, pending_days,
			   created_at, updated_at
		FROM leave_balances
		WHERE user_id = $1 AND leave_type_id = $2 AND year = $3
		FOR UPDATE
	`
	var b leave.LeaveBalance
	err := q.QueryRow(ctx, query, userID, leaveTypeID, year).Scan(
		&b.ID, &b.UserID, &b.LeaveTypeID, &b.Year,
		&b.EntitledDays, &b.UsedDays, &b.PendingDays,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrLeaveBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}
	return b, nil
}

func (r *leaveBalanceRepositoryImpl) Get(ctx context.Context, userID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)
	b, err := scanLeaveBalance(q.QueryRow(ctx,
		leaveBalanceSelect+`WHERE lb.user_id = $1 AND lb.leave_type_id = $2 AND lb.year = $3`,
		userID, leaveTypeID, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrLeaveBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}
	return b, nil
}

func (r *leaveBalanceRepositoryImpl) Update(ctx context.Context, b leave.LeaveBalance) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_balances
		SET entitled_days = $2, used_days = $3, pending_days = $4, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, b.ID, b.EntitledDays, b.UsedDays, b.PendingDays)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return leave.ErrLeaveBalanceNotFound
	}
	return nil
}

func (r *leaveBalanceRepositoryImpl) ListByUser(ctx context.Context, userID string, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx,
		leaveBalanceSelect+`WHERE lb.user_id = $1 AND lb.year = $2 ORDER BY lt.sort_order, lt.name`,
		userID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []leave.LeaveBalance
	for rows.Next() {
		b, err := scanLeaveBalance(rows)
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}
