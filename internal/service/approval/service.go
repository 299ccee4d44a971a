package approval

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/approval"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/employee"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/leave"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/remote"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/pkg/email"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/pkg/token"
)

// User-facing workflow messages rendered on the redirect page.
const (
	msgAlreadyProcessed = "This request has already been processed"
	msgManagerFirst     = "Manager approval is required before HR can approve"
	msgRoleMismatch     = "Token role mismatch"
)

type ApprovalServiceImpl struct {
	codec        *token.Codec
	leaveRepo    leave.LeaveApplicationRepository
	remoteRepo   remote.RemoteWorkRepository
	employeeRepo employee.EmployeeRepository
	emailService email.EmailService
}

func NewApprovalService(
	codec *token.Codec,
	leaveRepo leave.LeaveApplicationRepository,
	remoteRepo remote.RemoteWorkRepository,
	employeeRepo employee.EmployeeRepository,
	emailService email.EmailService,
) approval.Service {
	return &ApprovalServiceImpl{
		codec:        codec,
		leaveRepo:    leaveRepo,
		remoteRepo:   remoteRepo,
		employeeRepo: employeeRepo,
		emailService: emailService,
	}
}

// ActOnToken implements approval.Service. Every outcome, including a bad
// token or a repeated click, ends in a redirect intent; the only thing that
// varies is the success flag and the message.
func (s *ApprovalServiceImpl) ActOnToken(ctx context.Context, tokenString string, role approval.Role, action approval.Action) approval.RedirectIntent {
	result := s.codec.Verify(tokenString)
	if !result.Valid {
		return approval.RedirectIntent{Message: result.Reason}
	}

	claims := result.Claims
	if claims.Role != role {
		return approval.RedirectIntent{Message: msgRoleMismatch}
	}

	status := approval.StatusApproved
	if action == approval.ActionReject {
		status = approval.StatusRejected
	}

	switch claims.ApplicationType {
	case approval.TypeLeave:
		return s.actOnLeave(ctx, claims.ApplicationID, role, status)
	case approval.TypeRemote:
		return s.actOnRemote(ctx, claims.ApplicationID, role, status)
	default:
		return approval.RedirectIntent{Message: token.ReasonInvalidFormat}
	}
}

func (s *ApprovalServiceImpl) actOnLeave(ctx context.Context, applicationID string, role approval.Role, status approval.Status) approval.RedirectIntent {
	application, err := s.leaveRepo.GetByID(ctx, applicationID)
	if err != nil {
		slog.Error("Failed to load leave application for approval",
			"application_id", applicationID, "error", err)
		return approval.RedirectIntent{Message: "Leave request not found"}
	}

	var updated bool
	var stage string

	switch role {
	case approval.RoleManager:
		stage = "Manager"
		updated, err = s.leaveRepo.UpdateManagerDecision(ctx, applicationID, status)
	case approval.RoleHR:
		stage = "HR"
		if application.ManagerStatus == approval.StatusPending {
			return approval.RedirectIntent{Message: msgManagerFirst}
		}
		updated, err = s.leaveRepo.UpdateHRDecision(ctx, applicationID, status)
	}

	if err != nil {
		slog.Error("Failed to record leave decision",
			"application_id", applicationID, "role", role, "error", err)
		return approval.RedirectIntent{Message: "Failed to process the request"}
	}
	if !updated {
		return approval.RedirectIntent{Message: msgAlreadyProcessed}
	}

	s.notifyEmployee(ctx, application.EmployeeID, "Leave",
		formatDateRange(application.StartDate, application.EndDate), stage, status)

	slog.Info("Leave decision recorded",
		"application_id", applicationID, "role", role, "status", status.String())

	return approval.RedirectIntent{
		Success: true,
		Message: fmt.Sprintf("Leave request %s successfully", status.String()),
	}
}

func (s *ApprovalServiceImpl) actOnRemote(ctx context.Context, applicationID string, role approval.Role, status approval.Status) approval.RedirectIntent {
	application, err := s.remoteRepo.GetByID(ctx, applicationID)
	if err != nil {
		slog.Error("Failed to load remote work application for approval",
			"application_id", applicationID, "error", err)
		return approval.RedirectIntent{Message: "Remote work request not found"}
	}

	// The remote workflow has a single decision slot. The manager's click is
	// the effective one; HR clicking first is out of order, and HR clicking
	// after the manager finds the slot already taken.
	if role == approval.RoleHR && application.ApprovalStatus == approval.StatusPending {
		return approval.RedirectIntent{Message: msgManagerFirst}
	}

	updated, err := s.remoteRepo.UpdateDecision(ctx, applicationID, status, string(role))
	if err != nil {
		slog.Error("Failed to record remote work decision",
			"application_id", applicationID, "role", role, "error", err)
		return approval.RedirectIntent{Message: "Failed to process the request"}
	}
	if !updated {
		return approval.RedirectIntent{Message: msgAlreadyProcessed}
	}

	s.notifyEmployee(ctx, application.EmployeeID, "Remote work",
		formatDateRange(application.FromDate, application.ToDate), "Manager", status)

	slog.Info("Remote work decision recorded",
		"application_id", applicationID, "role", role, "status", status.String())

	return approval.RedirectIntent{
		Success: true,
		Message: fmt.Sprintf("Remote work request %s successfully", status.String()),
	}
}

func (s *ApprovalServiceImpl) notifyEmployee(ctx context.Context, employeeID, requestKind, dateRange, stage string, status approval.Status) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		slog.Error("Failed to look up employee for status notification",
			"employee_id", employeeID, "error", err)
		return
	}
	if emp.Email == nil {
		return
	}

	if err := s.emailService.SendStatusUpdate(
		*emp.Email, emp.FullName, requestKind, dateRange, stage, status.String(),
	); err != nil {
		slog.Error("Failed to send status update email",
			"employee_id", employeeID, "error", err)
	}
}

func formatDateRange(from, to time.Time) string {
	if from.Equal(to) {
		return from.Format("2006-01-02")
	}
	return fmt.Sprintf("%s to %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
}
