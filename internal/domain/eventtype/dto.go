package eventtype

import (
	"github.com/shiftpoint/attendance-backend-go/internal/pkg/validator"
)

type CreateEventTypeRequest struct {
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	IsPaid     bool    `json:"is_paid"`
	IsBreak    bool    `json:"is_break"`
	CampaignID *string `json:"campaign_id,omitempty"`
}

func (r *CreateEventTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !Category(r.Category).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be one of: WORK, BREAK, LEAVE, OTHER",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EventTypeResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	IsPaid     bool    `json:"is_paid"`
	IsBreak    bool    `json:"is_break"`
	CampaignID *string `json:"campaign_id,omitempty"`
}

func ToResponse(et EventType) EventTypeResponse {
	return EventTypeResponse{
		ID:         et.ID,
		Name:       et.Name,
		Category:   string(et.Category),
		IsPaid:     et.IsPaid,
		IsBreak:    et.IsBreak,
		CampaignID: et.CampaignID,
	}
}
