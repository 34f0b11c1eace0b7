package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeaveType is a named policy bucket.
type LeaveType struct {
	ID           string
	Name         string
	IsPaid       bool
	AllowFullDay bool
	AllowHalfDay bool
	SortOrder    int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "PENDING"
	LeaveRequestStatusApproved LeaveRequestStatus = "APPROVED"
	LeaveRequestStatusRejected LeaveRequestStatus = "REJECTED"
	LeaveRequestStatusCanceled LeaveRequestStatus = "CANCELED"
)

type DurationType string

const (
	DurationFullDay DurationType = "full_day"
	DurationHalfDay DurationType = "half_day"
)

// LeaveRequest covers [StartDate, EndDate] in UTC. Status transitions
// drive LeaveBalance mutation.
type LeaveRequest struct {
	ID           string
	UserID       string
	CampaignID   *string
	LeaveTypeID  string
	StartDate    time.Time
	EndDate      time.Time
	DurationType DurationType
	Days         decimal.Decimal // one decimal place
	Reason       string
	Status       LeaveRequestStatus
	ApprovedBy   *string
	ApprovedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined for responses and status derivation
	LeaveTypeName *string
	UserName      *string
}

// LeaveBalance is the per (user, leave type, year) ledger. Day quantities
// are fixed-point with one decimal place; RemainingDays is derived.
type LeaveBalance struct {
	ID           string
	UserID       string
	LeaveTypeID  string
	Year         int
	EntitledDays decimal.Decimal
	UsedDays     decimal.Decimal
	PendingDays  decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time

	LeaveTypeName *string
}

func (b LeaveBalance) RemainingDays() decimal.Decimal {
	return b.EntitledDays.Sub(b.UsedDays)
}
