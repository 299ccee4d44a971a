package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/attendance"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/handler/http/response"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/pkg/cron"
)

type AttendanceHandler interface {
	SyncLogs(w http.ResponseWriter, r *http.Request)
	SyncRoster(w http.ResponseWriter, r *http.Request)
	SyncStatus(w http.ResponseWriter, r *http.Request)
	MonthlyReport(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	syncService   attendance.SyncService
	reportService attendance.ReportService
	scheduler     *cron.AttendanceScheduler
}

func NewAttendanceHandler(
	syncService attendance.SyncService,
	reportService attendance.ReportService,
	scheduler *cron.AttendanceScheduler,
) AttendanceHandler {
	return &AttendanceHandlerImpl{
		syncService:   syncService,
		reportService: reportService,
		scheduler:     scheduler,
	}
}

// SyncLogs implements AttendanceHandler.
func (h *AttendanceHandlerImpl) SyncLogs(w http.ResponseWriter, r *http.Request) {
	var req attendance.SyncLogsRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SyncLogs decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	startDate, endDate := req.Range()
	result, err := h.syncService.SyncPunchLogs(r.Context(), startDate, endDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SyncRoster implements AttendanceHandler.
func (h *AttendanceHandlerImpl) SyncRoster(w http.ResponseWriter, r *http.Request) {
	result, err := h.syncService.SyncEmployees(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SyncStatus implements AttendanceHandler.
func (h *AttendanceHandlerImpl) SyncStatus(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.scheduler.Status())
}

// MonthlyReport implements AttendanceHandler.
func (h *AttendanceHandlerImpl) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 2000 || year > 2100 {
		response.BadRequest(w, "year must be a valid four-digit year", nil)
		return
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(w, "month must be between 1 and 12", nil)
		return
	}

	weeks, err := h.reportService.BuildMonthlySummary(r.Context(), employeeID, year, time.Month(month))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, weeks)
}
