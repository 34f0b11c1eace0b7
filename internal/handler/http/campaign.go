package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/campaign"
	"github.com/shiftpoint/attendance-backend-go/internal/handler/http/response"
	campaignsvc "github.com/shiftpoint/attendance-backend-go/internal/service/campaign"
)

type CampaignHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type CampaignHandlerImpl struct {
	campaignService *campaignsvc.Service
}

func NewCampaignHandler(campaignService *campaignsvc.Service) CampaignHandler {
	return &CampaignHandlerImpl{campaignService: campaignService}
}

// Create implements CampaignHandler.
func (h *CampaignHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq campaign.CreateCampaignRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create campaign decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.campaignService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create campaign service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Campaign created", "campaign_id", created.ID)
	response.Created(w, "Campaign created successfully", created)
}

// GetByID implements CampaignHandler.
func (h *CampaignHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	found, err := h.campaignService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// List implements CampaignHandler.
func (h *CampaignHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.campaignService.List(r.Context())
	if err != nil {
		slog.Error("List campaigns service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, campaigns)
}

// Update implements CampaignHandler.
func (h *CampaignHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq campaign.UpdateCampaignRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update campaign decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	if err := updateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.campaignService.Update(r.Context(), updateReq)
	if err != nil {
		slog.Error("Update campaign service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Campaign updated", "campaign_id", updated.ID)
	response.SuccessWithMessage(w, "Campaign updated successfully", updated)
}

// Delete implements CampaignHandler.
func (h *CampaignHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.campaignService.Delete(r.Context(), id); err != nil {
		slog.Error("Delete campaign service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Campaign deleted", "campaign_id", id)
	response.SuccessWithMessage(w, "Campaign deleted successfully", nil)
}
