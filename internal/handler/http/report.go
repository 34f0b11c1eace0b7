package http

import (
	"log/slog"
	"net/http"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/report"
	"github.com/shiftpoint/attendance-backend-go/internal/handler/http/response"
	reportsvc "github.com/shiftpoint/attendance-backend-go/internal/service/report"
)

type ReportHandler interface {
	Daily(w http.ResponseWriter, r *http.Request)
	Range(w http.ResponseWriter, r *http.Request)
	WeeklyTeam(w http.ResponseWriter, r *http.Request)
	TooWeekly(w http.ResponseWriter, r *http.Request)
	ExportDaily(w http.ResponseWriter, r *http.Request)
	ExportRange(w http.ResponseWriter, r *http.Request)
	ExportTooWeekly(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService *reportsvc.Service
}

func NewReportHandler(reportService *reportsvc.Service) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

func dailyRequest(r *http.Request) report.DailyReportRequest {
	req := report.DailyReportRequest{Date: r.URL.Query().Get("date")}
	if v := r.URL.Query().Get("campaign_id"); v != "" {
		req.CampaignID = &v
	}
	return req
}

func rangeRequest(r *http.Request) report.RangeReportRequest {
	req := report.RangeReportRequest{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
	if v := r.URL.Query().Get("campaign_id"); v != "" {
		req.CampaignID = &v
	}
	return req
}

// Daily implements ReportHandler.
func (h *ReportHandlerImpl) Daily(w http.ResponseWriter, r *http.Request) {
	table, err := h.reportService.GetDaily(r.Context(), dailyRequest(r))
	if err != nil {
		slog.Error("Daily report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, table)
}

// Range implements ReportHandler.
func (h *ReportHandlerImpl) Range(w http.ResponseWriter, r *http.Request) {
	table, err := h.reportService.GetRange(r.Context(), rangeRequest(r))
	if err != nil {
		slog.Error("Range report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, table)
}

// WeeklyTeam implements ReportHandler.
func (h *ReportHandlerImpl) WeeklyTeam(w http.ResponseWriter, r *http.Request) {
	table, err := h.reportService.GetWeeklyTeam(r.Context(), rangeRequest(r))
	if err != nil {
		slog.Error("Weekly team report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, table)
}

// TooWeekly implements ReportHandler.
func (h *ReportHandlerImpl) TooWeekly(w http.ResponseWriter, r *http.Request) {
	table, err := h.reportService.GetTooWeekly(r.Context(), rangeRequest(r))
	if err != nil {
		slog.Error("TOO weekly report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, table)
}

// ExportDaily implements ReportHandler.
func (h *ReportHandlerImpl) ExportDaily(w http.ResponseWriter, r *http.Request) {
	req := dailyRequest(r)
	table, err := h.reportService.GetDaily(r.Context(), req)
	if err != nil {
		slog.Error("Daily report export service error", "error", err)
		response.HandleError(w, err)
		return
	}

	export := h.reportService.ExportDaily(table, req.Date)
	response.Attachment(w, export.Filename, "text/csv", export.Content)
}

// ExportRange implements ReportHandler.
func (h *ReportHandlerImpl) ExportRange(w http.ResponseWriter, r *http.Request) {
	req := rangeRequest(r)
	table, err := h.reportService.GetRange(r.Context(), req)
	if err != nil {
		slog.Error("Range report export service error", "error", err)
		response.HandleError(w, err)
		return
	}

	export := h.reportService.ExportRange(table, req.Dates(), req.From, req.To)
	response.Attachment(w, export.Filename, "text/csv", export.Content)
}

// ExportTooWeekly implements ReportHandler.
func (h *ReportHandlerImpl) ExportTooWeekly(w http.ResponseWriter, r *http.Request) {
	req := rangeRequest(r)
	table, err := h.reportService.GetTooWeekly(r.Context(), req)
	if err != nil {
		slog.Error("TOO weekly report export service error", "error", err)
		response.HandleError(w, err)
		return
	}

	fromWeek, toWeek := req.From, req.To
	if len(table.Columns) > 0 {
		fromWeek = table.Columns[0]
		toWeek = table.Columns[len(table.Columns)-1]
	}
	export := h.reportService.ExportTooWeekly(table, fromWeek, toWeek)
	response.Attachment(w, export.Filename, "text/csv", export.Content)
}
