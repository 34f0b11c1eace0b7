package leave

import (
	"context"
	"time"
)

type LeaveTypeRepository interface {
	Create(ctx context.Context, lt LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	Update(ctx context.Context, lt LeaveType) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]LeaveType, error)
}

type LeaveRequestRepository interface {
	Create(ctx context.Context, lr LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	Update(ctx context.Context, lr LeaveRequest) error
	ListByUser(ctx context.Context, userID string) ([]LeaveRequest, error)
	ListByStatus(ctx context.Context, status LeaveRequestStatus) ([]LeaveRequest, error)

	// CheckOverlapping reports whether the user already has a pending or
	// approved request intersecting [start, end].
	CheckOverlapping(ctx context.Context, userID string, start, end time.Time) (bool, error)

	// ListApprovedOverlapping bulk-fetches approved requests for the
	// given users whose [start, end] intersects [from, to], joined with
	// the leave type name.
	ListApprovedOverlapping(ctx context.Context, userIDs []string, from, to time.Time) ([]LeaveRequest, error)
}

type LeaveBalanceRepository interface {
	// Upsert creates or replaces the balance row for its
	// (user, leave type, year) triple.
	Upsert(ctx context.Context, b LeaveBalance) (LeaveBalance, error)

	// GetForUpdate reads the balance row with a row lock; must run
	// inside a transaction.
	GetForUpdate(ctx context.Context, userID, leaveTypeID string, year int) (LeaveBalance, error)

	Get(ctx context.Context, userID, leaveTypeID string, year int) (LeaveBalance, error)
	Update(ctx context.Context, b LeaveBalance) error
	ListByUser(ctx context.Context, userID string, year int) ([]LeaveBalance, error)
}
