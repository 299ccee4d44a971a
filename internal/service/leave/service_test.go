package leave

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/config"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/approval"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/employee"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/leave"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/pkg/token"
)

type fakeLeaveRepo struct {
	created []leave.LeaveApplication
}

func (r *fakeLeaveRepo) Create(ctx context.Context, application leave.LeaveApplication) (leave.LeaveApplication, error) {
	r.created = append(r.created, application)
	return application, nil
}

func (r *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveApplication, error) {
	return leave.LeaveApplication{}, leave.ErrLeaveNotFound
}

func (r *fakeLeaveRepo) UpdateManagerDecision(ctx context.Context, id string, status approval.Status) (bool, error) {
	return false, nil
}

func (r *fakeLeaveRepo) UpdateHRDecision(ctx context.Context, id string, status approval.Status) (bool, error) {
	return false, nil
}

type fakeEmployeeRepo struct {
	emp     employee.Employee
	manager *employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if id != r.emp.ID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return r.emp, nil
}

func (r *fakeEmployeeRepo) GetManager(ctx context.Context, employeeID string) (*employee.Employee, error) {
	return r.manager, nil
}

func (r *fakeEmployeeRepo) UpsertFromRoster(ctx context.Context, record employee.RosterRecord) (bool, error) {
	return false, nil
}

type sentEmail struct {
	To          string
	ApproveLink string
	RejectLink  string
}

type fakeEmailService struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (f *fakeEmailService) SendApprovalRequest(to, recipientName, employeeName, requestKind, dateRange, reason, approveLink, rejectLink string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEmail{To: to, ApproveLink: approveLink, RejectLink: rejectLink})
	return nil
}

func (f *fakeEmailService) SendStatusUpdate(to, employeeName, requestKind, dateRange, stage, status string) error {
	return nil
}

func strPtr(s string) *string { return &s }

func newTestService(repo *fakeLeaveRepo, employeeRepo *fakeEmployeeRepo, emails *fakeEmailService) leave.LeaveService {
	return NewLeaveService(
		repo,
		employeeRepo,
		emails,
		token.NewCodec("test-secret", 72),
		config.AppConfig{BaseURL: "http://localhost:8080"},
		config.ApprovalConfig{HREmail: "hr@vista-hr.local"},
	)
}

func TestApply_CreatesPendingApplication(t *testing.T) {
	repo := &fakeLeaveRepo{}
	employeeRepo := &fakeEmployeeRepo{
		emp: employee.Employee{ID: "emp-1", FullName: "Ayesha Khan"},
	}
	svc := newTestService(repo, employeeRepo, &fakeEmailService{})

	resp, err := svc.Apply(context.Background(), leave.ApplyLeaveRequest{
		EmployeeID: "emp-1",
		LeaveType:  "annual",
		StartDate:  "2025-06-16",
		EndDate:    "2025-06-18",
		Reason:     "Family event",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ApplicationID)

	require.Len(t, repo.created, 1)
	created := repo.created[0]
	assert.Equal(t, 3, created.NumberOfDays)
	assert.Equal(t, approval.StatusPending, created.ManagerStatus)
	assert.Equal(t, approval.StatusPending, created.HRStatus)
	assert.False(t, created.FinalApproved)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), created.StartDate)
}

func TestApply_NotifiesManagerAndHR(t *testing.T) {
	repo := &fakeLeaveRepo{}
	employeeRepo := &fakeEmployeeRepo{
		emp: employee.Employee{ID: "emp-1", FullName: "Ayesha Khan"},
		manager: &employee.Employee{
			ID:       "mgr-1",
			FullName: "Bilal Ahmed",
			Email:    strPtr("bilal@vista-hr.local"),
		},
	}
	emails := &fakeEmailService{}
	svc := newTestService(repo, employeeRepo, emails)

	_, err := svc.Apply(context.Background(), leave.ApplyLeaveRequest{
		EmployeeID: "emp-1",
		LeaveType:  "annual",
		StartDate:  "2025-06-16",
		EndDate:    "2025-06-16",
		Reason:     "Medical appointment",
	})
	require.NoError(t, err)

	require.Len(t, emails.sent, 2)
	recipients := []string{emails.sent[0].To, emails.sent[1].To}
	assert.Contains(t, recipients, "bilal@vista-hr.local")
	assert.Contains(t, recipients, "hr@vista-hr.local")

	for _, sent := range emails.sent {
		assert.Contains(t, sent.ApproveLink, "/api/leaves/email-approval?token=")
		assert.Contains(t, sent.ApproveLink, "action=approve")
		assert.Contains(t, sent.RejectLink, "action=reject")
	}
}

func TestApply_NoManagerStillNotifiesHR(t *testing.T) {
	repo := &fakeLeaveRepo{}
	employeeRepo := &fakeEmployeeRepo{
		emp: employee.Employee{ID: "emp-1", FullName: "Ayesha Khan"},
	}
	emails := &fakeEmailService{}
	svc := newTestService(repo, employeeRepo, emails)

	_, err := svc.Apply(context.Background(), leave.ApplyLeaveRequest{
		EmployeeID: "emp-1",
		LeaveType:  "annual",
		StartDate:  "2025-06-16",
		EndDate:    "2025-06-16",
		Reason:     "Family event",
	})
	require.NoError(t, err)

	require.Len(t, emails.sent, 1)
	assert.Equal(t, "hr@vista-hr.local", emails.sent[0].To)
}

func TestApply_ValidationFailure(t *testing.T) {
	svc := newTestService(&fakeLeaveRepo{}, &fakeEmployeeRepo{
		emp: employee.Employee{ID: "emp-1"},
	}, &fakeEmailService{})

	_, err := svc.Apply(context.Background(), leave.ApplyLeaveRequest{
		EmployeeID: "emp-1",
		LeaveType:  "annual",
		StartDate:  "2025-06-18",
		EndDate:    "2025-06-16",
		Reason:     "Backwards range",
	})
	require.Error(t, err)
}

func TestApply_UnknownEmployee(t *testing.T) {
	svc := newTestService(&fakeLeaveRepo{}, &fakeEmployeeRepo{
		emp: employee.Employee{ID: "emp-1"},
	}, &fakeEmailService{})

	_, err := svc.Apply(context.Background(), leave.ApplyLeaveRequest{
		EmployeeID: "emp-404",
		LeaveType:  "annual",
		StartDate:  "2025-06-16",
		EndDate:    "2025-06-16",
		Reason:     "Family event",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
