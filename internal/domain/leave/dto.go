package leave

import (
	"github.com/shiftpoint/attendance-backend-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	UserID       string `json:"-"`
	LeaveTypeID  string `json:"leave_type_id"`
	StartDate    string `json:"start_date"` // YYYY-MM-DD
	EndDate      string `json:"end_date"`   // YYYY-MM-DD
	DurationType string `json:"duration_type"`
	Reason       string `json:"reason"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if r.DurationType == "" {
		r.DurationType = string(DurationFullDay)
	}
	if r.DurationType != string(DurationFullDay) && r.DurationType != string(DurationHalfDay) {
		errs = append(errs, validator.ValidationError{
			Field:   "duration_type",
			Message: "duration_type must be one of: full_day, half_day",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateLeaveTypeRequest struct {
	Name         string `json:"name"`
	IsPaid       bool   `json:"is_paid"`
	AllowFullDay bool   `json:"allow_full_day"`
	AllowHalfDay bool   `json:"allow_half_day"`
	SortOrder    int    `json:"sort_order"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetBalanceRequest struct {
	UserID       string `json:"user_id"`
	LeaveTypeID  string `json:"leave_type_id"`
	Year         int    `json:"year"`
	EntitledDays string `json:"entitled_days"` // decimal, one decimal place
}

func (r *SetBalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	UserName      *string `json:"user_name,omitempty"`
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeName *string `json:"leave_type_name,omitempty"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	DurationType  string  `json:"duration_type"`
	Days          string  `json:"days"`
	Reason        string  `json:"reason"`
	Status        string  `json:"status"`
	ApprovedBy    *string `json:"approved_by,omitempty"`
	ApprovedAt    *string `json:"approved_at,omitempty"`
}

func ToRequestResponse(lr LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:            lr.ID,
		UserID:        lr.UserID,
		UserName:      lr.UserName,
		LeaveTypeID:   lr.LeaveTypeID,
		LeaveTypeName: lr.LeaveTypeName,
		StartDate:     lr.StartDate.UTC().Format("2006-01-02"),
		EndDate:       lr.EndDate.UTC().Format("2006-01-02"),
		DurationType:  string(lr.DurationType),
		Days:          lr.Days.StringFixed(1),
		Reason:        lr.Reason,
		Status:        string(lr.Status),
		ApprovedBy:    lr.ApprovedBy,
	}
	if lr.ApprovedAt != nil {
		at := lr.ApprovedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
		resp.ApprovedAt = &at
	}
	return resp
}

type LeaveBalanceResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeName *string `json:"leave_type_name,omitempty"`
	Year          int     `json:"year"`
	EntitledDays  string  `json:"entitled_days"`
	UsedDays      string  `json:"used_days"`
	PendingDays   string  `json:"pending_days"`
	RemainingDays string  `json:"remaining_days"`
}

func ToBalanceResponse(b LeaveBalance) LeaveBalanceResponse {
	return LeaveBalanceResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		LeaveTypeID:   b.LeaveTypeID,
		LeaveTypeName: b.LeaveTypeName,
		Year:          b.Year,
		EntitledDays:  b.EntitledDays.StringFixed(1),
		UsedDays:      b.UsedDays.StringFixed(1),
		PendingDays:   b.PendingDays.StringFixed(1),
		RemainingDays: b.RemainingDays().StringFixed(1),
	}
}
