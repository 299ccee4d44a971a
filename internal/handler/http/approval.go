package http

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/approval"
)

type ApprovalHandler interface {
	LeaveEmailApproval(w http.ResponseWriter, r *http.Request)
	RemoteEmailApproval(w http.ResponseWriter, r *http.Request)
}

// ApprovalHandlerImpl serves the public links embedded in approval emails.
// Every outcome is a redirect to the portal frontend: the person clicking is
// in a mail client, not an API consumer, so JSON errors are useless here.
type ApprovalHandlerImpl struct {
	approvalService approval.Service
	frontendURL     string
}

func NewApprovalHandler(approvalService approval.Service, frontendURL string) ApprovalHandler {
	return &ApprovalHandlerImpl{
		approvalService: approvalService,
		frontendURL:     frontendURL,
	}
}

// LeaveEmailApproval implements ApprovalHandler.
func (h *ApprovalHandlerImpl) LeaveEmailApproval(w http.ResponseWriter, r *http.Request) {
	h.emailApproval(w, r, "leaves")
}

// RemoteEmailApproval implements ApprovalHandler.
func (h *ApprovalHandlerImpl) RemoteEmailApproval(w http.ResponseWriter, r *http.Request) {
	h.emailApproval(w, r, "remote-work")
}

// The application type also travels inside the token; the route only decides
// which frontend status page the click lands on.
func (h *ApprovalHandlerImpl) emailApproval(w http.ResponseWriter, r *http.Request, section string) {
	query := r.URL.Query()
	tokenString := query.Get("token")
	role := query.Get("role")
	action := query.Get("action")

	if tokenString == "" || role == "" || action == "" {
		h.redirect(w, r, section, approval.RedirectIntent{Message: "Missing required parameters"})
		return
	}
	if !approval.ValidRole(role) {
		h.redirect(w, r, section, approval.RedirectIntent{Message: "Invalid approval role"})
		return
	}
	if !approval.ValidAction(action) {
		h.redirect(w, r, section, approval.RedirectIntent{Message: "Invalid approval action"})
		return
	}

	intent := h.approvalService.ActOnToken(r.Context(), tokenString,
		approval.Role(role), approval.Action(action))
	h.redirect(w, r, section, intent)
}

func (h *ApprovalHandlerImpl) redirect(w http.ResponseWriter, r *http.Request, section string, intent approval.RedirectIntent) {
	notification := "error"
	if intent.Success {
		notification = "success"
	}

	target := fmt.Sprintf("%s/%s/status?notification=%s&message=%s",
		h.frontendURL, section, notification, url.QueryEscape(intent.Message))
	http.Redirect(w, r, target, http.StatusFound)
}
