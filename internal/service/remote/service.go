package remote

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
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/remote"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/pkg/email"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/pkg/token"
)

// Rolling quota limits for remote-work days.
const (
	maxDaysPerSixMonths = 4
	maxDaysPerMonth     = 2
)

type RemoteWorkServiceImpl struct {
	repo         remote.RemoteWorkRepository
	employeeRepo employee.EmployeeRepository
	emailService email.EmailService
	codec        *token.Codec
	appCfg       config.AppConfig
	approvalCfg  config.ApprovalConfig
	now          func() time.Time
}

func NewRemoteWorkService(
	repo remote.RemoteWorkRepository,
	employeeRepo employee.EmployeeRepository,
	emailService email.EmailService,
	codec *token.Codec,
	appCfg config.AppConfig,
	approvalCfg config.ApprovalConfig,
) remote.RemoteWorkService {
	return &RemoteWorkServiceImpl{
		repo:         repo,
		employeeRepo: employeeRepo,
		emailService: emailService,
		codec:        codec,
		appCfg:       appCfg,
		approvalCfg:  approvalCfg,
		now:          time.Now,
	}
}

// CanApply implements remote.RemoteWorkService. The checks run in a fixed
// order and the first failure wins, so the applicant always sees the most
// fundamental objection first.
func (s *RemoteWorkServiceImpl) CanApply(ctx context.Context, employeeID string, requestedDays int, from, to time.Time) (remote.Eligibility, error) {
	applicant, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return remote.Eligibility{}, err
	}

	if !applicant.IsPermanent() {
		return remote.Eligibility{Reason: "Only permanent employees can apply for remote work"}, nil
	}

	now := s.now()

	sixMonthDays, err := s.repo.ApprovedDaysSince(ctx, employeeID, now.AddDate(0, -6, 0))
	if err != nil {
		return remote.Eligibility{}, fmt.Errorf("failed to count approved remote days: %w", err)
	}
	if sixMonthDays+requestedDays > maxDaysPerSixMonths {
		return remote.Eligibility{Reason: "Remote work limit reached: maximum 4 days allowed in the last 6 months"}, nil
	}

	oneMonthDays, err := s.repo.ApprovedDaysSince(ctx, employeeID, now.AddDate(0, -1, 0))
	if err != nil {
		return remote.Eligibility{}, fmt.Errorf("failed to count approved remote days: %w", err)
	}
	if oneMonthDays+requestedDays > maxDaysPerMonth {
		return remote.Eligibility{Reason: "Remote work limit reached: maximum 2 days allowed in the last 1 month"}, nil
	}

	overlapping, err := s.repo.HasOverlapping(ctx, employeeID, from, to)
	if err != nil {
		return remote.Eligibility{}, fmt.Errorf("failed to check overlapping applications: %w", err)
	}
	if overlapping {
		return remote.Eligibility{Reason: "You have already applied for remote work on these dates"}, nil
	}

	return remote.Eligibility{Allowed: true}, nil
}

// Apply implements remote.RemoteWorkService.
func (s *RemoteWorkServiceImpl) Apply(ctx context.Context, req remote.ApplyRemoteRequest) (remote.Eligibility, remote.ApplyRemoteResponse, error) {
	if err := req.Validate(); err != nil {
		return remote.Eligibility{}, remote.ApplyRemoteResponse{}, err
	}

	from, to := req.Range()
	eligibility, err := s.CanApply(ctx, req.EmployeeID, req.NumberOfDays(), from, to)
	if err != nil {
		return remote.Eligibility{}, remote.ApplyRemoteResponse{}, err
	}
	if !eligibility.Allowed {
		return eligibility, remote.ApplyRemoteResponse{}, nil
	}

	applicant, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return remote.Eligibility{}, remote.ApplyRemoteResponse{}, err
	}

	application := remote.RemoteWorkApplication{
		ID:             uuid.NewString(),
		EmployeeID:     req.EmployeeID,
		FromDate:       from,
		ToDate:         to,
		NumberOfDays:   req.NumberOfDays(),
		Reason:         req.Reason,
		ApprovalStatus: approval.StatusPending,
		ManagerID:      applicant.ManagerID,
		Status:         remote.RecordActive,
	}

	created, err := s.repo.Create(ctx, application)
	if err != nil {
		return remote.Eligibility{}, remote.ApplyRemoteResponse{}, fmt.Errorf("failed to create remote work application: %w", err)
	}

	s.notifyApprovers(ctx, created, applicant)

	slog.Info("Remote work application submitted",
		"application_id", created.ID,
		"employee_id", created.EmployeeID,
		"days", created.NumberOfDays,
	)

	return eligibility, remote.ApplyRemoteResponse{ApplicationID: created.ID}, nil
}

func (s *RemoteWorkServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]remote.RemoteWorkApplication, error) {
	return s.repo.ListByEmployee(ctx, employeeID)
}

// Delete implements remote.RemoteWorkService.
func (s *RemoteWorkServiceImpl) Delete(ctx context.Context, id string, employeeID string) error {
	deleted, err := s.repo.SoftDelete(ctx, id, employeeID)
	if err != nil {
		return fmt.Errorf("failed to delete remote work application: %w", err)
	}
	if !deleted {
		return remote.ErrApplicationNotFound
	}
	return nil
}

func (s *RemoteWorkServiceImpl) notifyApprovers(ctx context.Context, application remote.RemoteWorkApplication, applicant employee.Employee) {
	dateRange := formatDateRange(application.FromDate, application.ToDate)

	var wg sync.WaitGroup

	manager, err := s.employeeRepo.GetManager(ctx, applicant.ID)
	if err != nil {
		slog.Error("Failed to look up manager for remote work notification",
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
					to, name, applicant.FullName, "Remote work",
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
				s.approvalCfg.HREmail, "HR Team", applicant.FullName, "Remote work",
				dateRange, application.Reason, approveLink, rejectLink,
			); err != nil {
				slog.Error("Failed to send HR approval email",
					"application_id", application.ID, "to", s.approvalCfg.HREmail, "error", err)
			}
		}()
	}

	wg.Wait()
}

func (s *RemoteWorkServiceImpl) actionLinks(applicationID string, role approval.Role) (string, string, error) {
	tokenString, err := s.codec.Issue(applicationID, approval.TypeRemote, role)
	if err != nil {
		return "", "", err
	}

	base := fmt.Sprintf("%s/api/remote-work/email-approval?token=%s&role=%s",
		s.appCfg.BaseURL, url.QueryEscape(tokenString), role)
	return base + "&action=" + string(approval.ActionApprove),
		base + "&action=" + string(approval.ActionReject),
		nil
}

func formatDateRange(from, to time.Time) string {
	if from.Equal(to) {
		return from.Format("2006-01-02")
	}
	return fmt.Sprintf("%s to %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
}
