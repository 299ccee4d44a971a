package leave

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/config"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/approval"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/employee"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/leave"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/pkg/email"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/pkg/token"
)

type LeaveServiceImpl struct {
	repo         leave.LeaveApplicationRepository
	employeeRepo employee.EmployeeRepository
	emailService email.EmailService
	codec        *token.Codec
	appCfg       config.AppConfig
	approvalCfg  config.ApprovalConfig
}

func NewLeaveService(
	repo leave.LeaveApplicationRepository,
	employeeRepo employee.EmployeeRepository,
	emailService email.EmailService,
	codec *token.Codec,
	appCfg config.AppConfig,
	approvalCfg config.ApprovalConfig,
) leave.LeaveService {
	return &LeaveServiceImpl{
		repo:         repo,
		employeeRepo: employeeRepo,
		emailService: emailService,
		codec:        codec,
		appCfg:       appCfg,
		approvalCfg:  approvalCfg,
	}
}

// Apply implements leave.LeaveService. The application is stored with both
// stages pending, then the manager and HR are emailed their approval links.
// Email delivery is best-effort: a failed send is logged, never rolled back.
func (s *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.ApplyLeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.ApplyLeaveResponse{}, err
	}

	applicant, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.ApplyLeaveResponse{}, err
	}

	startDate, endDate := req.Range()
	application := leave.LeaveApplication{
		ID:            uuid.NewString(),
		EmployeeID:    req.EmployeeID,
		LeaveType:     req.LeaveType,
		StartDate:     startDate,
		EndDate:       endDate,
		NumberOfDays:  int(endDate.Sub(startDate).Hours()/24) + 1,
		Reason:        req.Reason,
		ManagerStatus: approval.StatusPending,
		HRStatus:      approval.StatusPending,
	}

	created, err := s.repo.Create(ctx, application)
	if err != nil {
		return leave.ApplyLeaveResponse{}, fmt.Errorf("failed to create leave application: %w", err)
	}

	s.notifyApprovers(ctx, created, applicant)

	slog.Info("Leave application submitted",
		"application_id", created.ID,
		"employee_id", created.EmployeeID,
		"days", created.NumberOfDays,
	)

	return leave.ApplyLeaveResponse{ApplicationID: created.ID}, nil
}

func (s *LeaveServiceImpl) notifyApprovers(ctx context.Context, application leave.LeaveApplication, applicant employee.Employee) {
	dateRange := formatDateRange(application.StartDate, application.EndDate)

	var wg sync.WaitGroup

	manager, err := s.employeeRepo.GetManager(ctx, applicant.ID)
	if err != nil {
		slog.Error("Failed to look up manager for leave notification",
			"application_id", application.ID, "employee_id", applicant.ID, "error", err)
	} else if manager != nil && manager.Email != nil {
		approveLink, rejectLink, err := s.actionLinks(application.ID, approval.RoleManager)
		if err != nil {
			slog.Error("Failed to issue manager approval token",
				"application_id", application.ID, "error", err)
		} else {
			wg.Add(1)
			go func(to, name string) {
				defer wg.Done()
				if err := s.emailService.SendApprovalRequest(
					to, name, applicant.FullName, "Leave",
					dateRange, application.Reason, approveLink, rejectLink,
				); err != nil {
					slog.Error("Failed to send manager approval email",
						"application_id", application.ID, "to", to, "error", err)
				}
			}(*manager.Email, manager.FullName)
		}
	}

	approveLink, rejectLink, err := s.actionLinks(application.ID, approval.RoleHR)
	if err != nil {
		slog.Error("Failed to issue HR approval token",
			"application_id", application.ID, "error", err)
	} else {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.emailService.SendApprovalRequest(
				s.approvalCfg.HREmail, "HR Team", applicant.FullName, "Leave",
				dateRange, application.Reason, approveLink, rejectLink,
			); err != nil {
				slog.Error("Failed to send HR approval email",
					"application_id", application.ID, "to", s.approvalCfg.HREmail, "error", err)
			}
		}()
	}

	wg.Wait()
}

func (s *LeaveServiceImpl) actionLinks(applicationID string, role approval.Role) (string, string, error) {
	tokenString, err := s.codec.Issue(applicationID, approval.TypeLeave, role)
	if err != nil {
		return "", "", err
	}

	base := fmt.Sprintf("%s/api/leaves/email-approval?token=%s&role=%s",
		s.appCfg.BaseURL, url.QueryEscape(tokenString), role)
	return base + "&action=" + string(approval.ActionApprove),
		base + "&action=" + string(approval.ActionReject),
		nil
}

func formatDateRange(start, end time.Time) string {
	if start.Equal(end) {
		return start.Format("2006-01-02")
	}
	return fmt.Sprintf("%s to %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
}
