package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/eventtype"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/leave"
	"github.com/shiftpoint/attendance-backend-go/internal/handler/http/response"
	mastersvc "github.com/shiftpoint/attendance-backend-go/internal/service/master"
)

// MasterHandler serves the master data catalog: event types and leave
// types.
type MasterHandler interface {
	CreateEventType(w http.ResponseWriter, r *http.Request)
	UpdateEventType(w http.ResponseWriter, r *http.Request)
	DeleteEventType(w http.ResponseWriter, r *http.Request)
	ListEventTypes(w http.ResponseWriter, r *http.Request)
	CreateLeaveType(w http.ResponseWriter, r *http.Request)
	UpdateLeaveType(w http.ResponseWriter, r *http.Request)
	DeleteLeaveType(w http.ResponseWriter, r *http.Request)
	ListLeaveTypes(w http.ResponseWriter, r *http.Request)
}

type MasterHandlerImpl struct {
	masterService *mastersvc.Service
}

func NewMasterHandler(masterService *mastersvc.Service) MasterHandler {
	return &MasterHandlerImpl{masterService: masterService}
}

// CreateEventType implements MasterHandler.
func (h *MasterHandlerImpl) CreateEventType(w http.ResponseWriter, r *http.Request) {
	var createReq eventtype.CreateEventTypeRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create event type decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.masterService.CreateEventType(r.Context(), createReq)
	if err != nil {
		slog.Error("Create event type service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Event type created successfully", created)
}

// UpdateEventType implements MasterHandler.
func (h *MasterHandlerImpl) UpdateEventType(w http.ResponseWriter, r *http.Request) {
	var updateReq eventtype.CreateEventTypeRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update event type decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := updateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.masterService.UpdateEventType(r.Context(), chi.URLParam(r, "id"), updateReq)
	if err != nil {
		slog.Error("Update event type service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Event type updated successfully", updated)
}

// DeleteEventType implements MasterHandler.
func (h *MasterHandlerImpl) DeleteEventType(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteEventType(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("Delete event type service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Event type deleted successfully", nil)
}

// ListEventTypes implements MasterHandler.
func (h *MasterHandlerImpl) ListEventTypes(w http.ResponseWriter, r *http.Request) {
	var campaignID *string
	if v := r.URL.Query().Get("campaign_id"); v != "" {
		campaignID = &v
	}

	types, err := h.masterService.ListEventTypes(r.Context(), campaignID)
	if err != nil {
		slog.Error("List event types service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, types)
}

// CreateLeaveType implements MasterHandler.
func (h *MasterHandlerImpl) CreateLeaveType(w http.ResponseWriter, r *http.Request) {
	var createReq leave.CreateLeaveTypeRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create leave type decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.masterService.CreateLeaveType(r.Context(), createReq)
	if err != nil {
		slog.Error("Create leave type service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave type created successfully", created)
}

// UpdateLeaveType implements MasterHandler.
func (h *MasterHandlerImpl) UpdateLeaveType(w http.ResponseWriter, r *http.Request) {
	var updateReq leave.CreateLeaveTypeRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update leave type decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := updateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.masterService.UpdateLeaveType(r.Context(), chi.URLParam(r, "id"), updateReq)
	if err != nil {
		slog.Error("Update leave type service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type updated successfully", updated)
}

// DeleteLeaveType implements MasterHandler.
func (h *MasterHandlerImpl) DeleteLeaveType(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteLeaveType(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("Delete leave type service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type deleted successfully", nil)
}

// ListLeaveTypes implements MasterHandler.
func (h *MasterHandlerImpl) ListLeaveTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.masterService.ListLeaveTypes(r.Context())
	if err != nil {
		slog.Error("List leave types service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, types)
}
