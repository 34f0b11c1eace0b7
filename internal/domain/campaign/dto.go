package campaign

import (
	"github.com/shiftpoint/attendance-backend-go/internal/pkg/validator"
)

type CreateCampaignRequest struct {
	Name               string     `json:"name"`
	WorkDayStart       *string    `json:"work_day_start,omitempty"`
	WorkDayEnd         *string    `json:"work_day_end,omitempty"`
	LunchStart         *string    `json:"lunch_start,omitempty"`
	LunchEnd           *string    `json:"lunch_end,omitempty"`
	TeaBreaks          []TeaBreak `json:"tea_breaks,omitempty"`
	LeaveApproverEmail *string    `json:"leave_approver_email,omitempty"`
	EscalationEmail    *string    `json:"escalation_email,omitempty"`
	Timezone           string     `json:"timezone"`
}

func (r *CreateCampaignRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	for field, value := range map[string]*string{
		"work_day_start": r.WorkDayStart,
		"work_day_end":   r.WorkDayEnd,
		"lunch_start":    r.LunchStart,
		"lunch_end":      r.LunchEnd,
	} {
		if value != nil && !validator.IsValidTimeOfDay(*value) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be in HH:MM format",
			})
		}
	}

	for _, tb := range r.TeaBreaks {
		if !validator.IsValidTimeOfDay(tb.Start) || !validator.IsValidTimeOfDay(tb.End) {
			errs = append(errs, validator.ValidationError{
				Field:   "tea_breaks",
				Message: "tea break times must be in HH:MM format",
			})
			break
		}
	}

	if r.LeaveApproverEmail != nil && !validator.IsValidEmail(*r.LeaveApproverEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_approver_email",
			Message: "leave_approver_email must be a valid email address",
		})
	}

	if r.EscalationEmail != nil && !validator.IsValidEmail(*r.EscalationEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "escalation_email",
			Message: "escalation_email must be a valid email address",
		})
	}

	if r.Timezone == "" {
		r.Timezone = "UTC"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateCampaignRequest struct {
	ID string `json:"-"`
	CreateCampaignRequest
}

func (r *UpdateCampaignRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if err := r.CreateCampaignRequest.Validate(); err != nil {
		if inner, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, inner...)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CampaignResponse struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	WorkDayStart       *string    `json:"work_day_start,omitempty"`
	WorkDayEnd         *string    `json:"work_day_end,omitempty"`
	LunchStart         *string    `json:"lunch_start,omitempty"`
	LunchEnd           *string    `json:"lunch_end,omitempty"`
	TeaBreaks          []TeaBreak `json:"tea_breaks,omitempty"`
	LeaveApproverEmail *string    `json:"leave_approver_email,omitempty"`
	EscalationEmail    *string    `json:"escalation_email,omitempty"`
	Timezone           string     `json:"timezone"`
}

func ToResponse(c Campaign) CampaignResponse {
	return CampaignResponse{
		ID:                 c.ID,
		Name:               c.Name,
		WorkDayStart:       c.WorkDayStart,
		WorkDayEnd:         c.WorkDayEnd,
		LunchStart:         c.LunchStart,
		LunchEnd:           c.LunchEnd,
		TeaBreaks:          c.TeaBreaks,
		LeaveApproverEmail: c.LeaveApproverEmail,
		EscalationEmail:    c.EscalationEmail,
		Timezone:           c.Timezone,
	}
}
