package leave

import "errors"

var (
	ErrLeaveTypeNotFound    = errors.New("leave type not found")
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrLeaveBalanceNotFound = errors.New("leave balance not found")
	ErrAlreadyProcessed     = errors.New("leave request has already been processed")
	ErrOverlappingLeave     = errors.New("an overlapping leave request already exists")
	ErrInsufficientBalance  = errors.New("insufficient leave balance")
	ErrHalfDayNotAllowed    = errors.New("half-day requests are not allowed for this leave type")
	ErrFullDayNotAllowed    = errors.New("full-day requests are not allowed for this leave type")
)
