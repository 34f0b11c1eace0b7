package timeevent

import (
	"github.com/shiftpoint/attendance-backend-go/internal/pkg/validator"
)

type ClockRequest struct {
	UserID      string `json:"-"`
	EventTypeID string `json:"event_type_id"`
	Source      string `json:"source"`
}

func (r *ClockRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if validator.IsEmpty(r.EventTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "event_type_id",
			Message: "event_type_id is required",
		})
	}

	if r.Source == "" {
		r.Source = "web"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TimeEventResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	CampaignID    *string `json:"campaign_id,omitempty"`
	EventTypeID   string  `json:"event_type_id"`
	EventTypeName string  `json:"event_type_name"`
	OccurredAt    string  `json:"occurred_at"`
	Source        string  `json:"source"`
	LateMinutes   *int    `json:"late_minutes,omitempty"`
}

func ToResponse(e TimeEvent) TimeEventResponse {
	return TimeEventResponse{
		ID:            e.ID,
		UserID:        e.UserID,
		CampaignID:    e.CampaignID,
		EventTypeID:   e.EventTypeID,
		EventTypeName: e.EventTypeName,
		OccurredAt:    e.OccurredAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Source:        e.Source,
		LateMinutes:   e.LateMinutes,
	}
}
