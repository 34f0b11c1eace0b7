package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/leave"
	"github.com/shiftpoint/attendance-backend-go/internal/handler/http/response"
	leavesvc "github.com/shiftpoint/attendance-backend-go/internal/service/leave"
)

type LeaveHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListForUser(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	SetBalance(w http.ResponseWriter, r *http.Request)
	ListMyBalances(w http.ResponseWriter, r *http.Request)
	ListBalancesForUser(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService *leavesvc.Service
}

func NewLeaveHandler(leaveService *leavesvc.Service) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// Create implements LeaveHandler. Requests are always filed for the
// acting user.
func (h *LeaveHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	var createReq leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create leave request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	createReq.UserID = userID

	created, err := h.leaveService.CreateRequest(r.Context(), createReq)
	if err != nil {
		slog.Error("Create leave request service error", "error", err, "user_id", userID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave request created", "request_id", created.ID, "user_id", userID)
	response.Created(w, "Leave request created successfully", created)
}

// ListMine implements LeaveHandler.
func (h *LeaveHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	requests, err := h.leaveService.ListByUser(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListForUser implements LeaveHandler.
func (h *LeaveHandlerImpl) ListForUser(w http.ResponseWriter, r *http.Request) {
	requests, err := h.leaveService.ListByUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListPending implements LeaveHandler.
func (h *LeaveHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	requests, err := h.leaveService.ListPending(r.Context())
	if err != nil {
		slog.Error("List pending leave requests service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// Approve implements LeaveHandler.
func (h *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, true)
}

// Reject implements LeaveHandler.
func (h *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, false)
}

func (h *LeaveHandlerImpl) decide(w http.ResponseWriter, r *http.Request, approve bool) {
	approverID, _, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	requestID := chi.URLParam(r, "id")
	var decided leave.LeaveRequest
	var err error
	if approve {
		decided, err = h.leaveService.Approve(r.Context(), requestID, approverID)
	} else {
		decided, err = h.leaveService.Reject(r.Context(), requestID, approverID)
	}
	if err != nil {
		slog.Error("Decide leave request service error", "error", err, "request_id", requestID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave request decided", "request_id", requestID, "status", decided.Status)
	response.SuccessWithMessage(w, "Leave request updated successfully", decided)
}

// Cancel implements LeaveHandler. Only the owner may cancel, and only
// while the request is still pending.
func (h *LeaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	cancelled, err := h.leaveService.Cancel(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled successfully", cancelled)
}

// SetBalance implements LeaveHandler.
func (h *LeaveHandlerImpl) SetBalance(w http.ResponseWriter, r *http.Request) {
	var balanceReq leave.SetBalanceRequest

	if err := json.NewDecoder(r.Body).Decode(&balanceReq); err != nil {
		slog.Error("Set leave balance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := balanceReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	balance, err := h.leaveService.SetBalance(r.Context(), balanceReq)
	if err != nil {
		slog.Error("Set leave balance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave balance set", "user_id", balanceReq.UserID, "leave_type_id", balanceReq.LeaveTypeID)
	response.SuccessWithMessage(w, "Leave balance set successfully", balance)
}

// ListMyBalances implements LeaveHandler.
func (h *LeaveHandlerImpl) ListMyBalances(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	h.listBalances(w, r, userID)
}

// ListBalancesForUser implements LeaveHandler.
func (h *LeaveHandlerImpl) ListBalancesForUser(w http.ResponseWriter, r *http.Request) {
	h.listBalances(w, r, chi.URLParam(r, "id"))
}

func (h *LeaveHandlerImpl) listBalances(w http.ResponseWriter, r *http.Request, userID string) {
	year := time.Now().UTC().Year()
	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		year = parsed
	}

	balances, err := h.leaveService.ListBalances(r.Context(), userID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}
