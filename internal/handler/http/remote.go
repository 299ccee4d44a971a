package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/remote"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/handler/http/response"
)

type RemoteWorkHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type RemoteWorkHandlerImpl struct {
	remoteService remote.RemoteWorkService
}

func NewRemoteWorkHandler(remoteService remote.RemoteWorkService) RemoteWorkHandler {
	return &RemoteWorkHandlerImpl{remoteService: remoteService}
}

// Apply implements RemoteWorkHandler. A quota or eligibility denial is a
// normal outcome: it comes back as a 400 with the denial reason, not a 5xx.
func (h *RemoteWorkHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req remote.ApplyRemoteRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Apply remote work decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	eligibility, resp, err := h.remoteService.Apply(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if !eligibility.Allowed {
		response.BadRequest(w, eligibility.Reason, nil)
		return
	}

	response.Created(w, "Remote work application submitted successfully", resp)
}

// List implements RemoteWorkHandler.
func (h *RemoteWorkHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	applications, err := h.remoteService.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, applications)
}

// Delete implements RemoteWorkHandler.
func (h *RemoteWorkHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Application ID is required", nil)
		return
	}

	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	if err := h.remoteService.Delete(r.Context(), id, employeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Remote work application deleted successfully", nil)
}
