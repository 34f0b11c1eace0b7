package response

import (
	"errors"
	"net/http"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/auth"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/campaign"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/eventtype"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/leave"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/timeevent"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/user"
	"github.com/shiftpoint/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrManagerOrAdminAccessRequired):
		Forbidden(w, err.Error())

	// Campaign domain errors
	case errors.Is(err, campaign.ErrCampaignNotFound):
		NotFound(w, "Campaign not found")
	case errors.Is(err, campaign.ErrNameExists):
		Conflict(w, "Campaign name already exists")

	// Time tracking errors
	case errors.Is(err, eventtype.ErrEventTypeNotFound):
		NotFound(w, "Event type not found")
	case errors.Is(err, eventtype.ErrInvalidCategory):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, timeevent.ErrTimeEventNotFound):
		NotFound(w, "Time event not found")
	case errors.Is(err, timeevent.ErrUnknownEventType):
		BadRequest(w, "Unknown event type", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "An overlapping leave request already exists")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrHalfDayNotAllowed),
		errors.Is(err, leave.ErrFullDayNotAllowed):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
