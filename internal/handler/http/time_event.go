package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/report"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/timeevent"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/user"
	"github.com/shiftpoint/attendance-backend-go/internal/handler/http/response"
	timeeventsvc "github.com/shiftpoint/attendance-backend-go/internal/service/timeevent"
)

type TimeEventHandler interface {
	Clock(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListForUser(w http.ResponseWriter, r *http.Request)
}

type TimeEventHandlerImpl struct {
	timeEventService *timeeventsvc.Service
}

func NewTimeEventHandler(timeEventService *timeeventsvc.Service) TimeEventHandler {
	return &TimeEventHandlerImpl{timeEventService: timeEventService}
}

// Clock implements TimeEventHandler. The acting user always clocks
// themselves; the user ID comes from the token, never the body.
func (h *TimeEventHandlerImpl) Clock(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	var clockReq timeevent.ClockRequest
	if err := json.NewDecoder(r.Body).Decode(&clockReq); err != nil {
		slog.Error("Clock decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	clockReq.UserID = userID

	if err := clockReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	event, err := h.timeEventService.Clock(r.Context(), clockReq)
	if err != nil {
		slog.Error("Clock service error", "error", err, "user_id", userID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Time event recorded", "user_id", userID, "event_type", event.EventTypeName)
	response.Created(w, "Time event recorded successfully", timeevent.ToResponse(event))
}

// ListMine implements TimeEventHandler.
func (h *TimeEventHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	h.list(w, r, userID)
}

// ListForUser implements TimeEventHandler. Managers and admins may view
// any user's events; employees only their own.
func (h *TimeEventHandlerImpl) ListForUser(w http.ResponseWriter, r *http.Request) {
	actorID, role, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	targetID := chi.URLParam(r, "id")
	if targetID != actorID && role != user.RoleManager && role != user.RoleAdmin {
		response.HandleError(w, user.ErrManagerOrAdminAccessRequired)
		return
	}

	h.list(w, r, targetID)
}

func (h *TimeEventHandlerImpl) list(w http.ResponseWriter, r *http.Request, userID string) {
	rangeReq := report.RangeReportRequest{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}

	events, err := h.timeEventService.ListForUser(r.Context(), userID, rangeReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]timeevent.TimeEventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, timeevent.ToResponse(event))
	}
	response.Success(w, out)
}
