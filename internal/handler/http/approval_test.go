package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/approval"
)

type fakeApprovalService struct {
	intent   approval.RedirectIntent
	lastRole approval.Role
	called   bool
}

func (f *fakeApprovalService) ActOnToken(ctx context.Context, tokenString string, role approval.Role, action approval.Action) approval.RedirectIntent {
	f.called = true
	f.lastRole = role
	return f.intent
}

func TestLeaveEmailApproval_SuccessRedirect(t *testing.T) {
	svc := &fakeApprovalService{intent: approval.RedirectIntent{
		Success: true,
		Message: "Leave request approved successfully",
	}}
	handler := NewApprovalHandler(svc, "http://localhost:3000")

	req := httptest.NewRequest(http.MethodGet,
		"/api/leaves/email-approval?token=abc.def&role=manager&action=approve", nil)
	rec := httptest.NewRecorder()

	handler.LeaveEmailApproval(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.True(t, svc.called)
	assert.Equal(t, approval.RoleManager, svc.lastRole)

	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/leaves/status", location.Path)
	assert.Equal(t, "success", location.Query().Get("notification"))
	assert.Equal(t, "Leave request approved successfully", location.Query().Get("message"))
}

func TestRemoteEmailApproval_FailureRedirect(t *testing.T) {
	svc := &fakeApprovalService{intent: approval.RedirectIntent{
		Message: "Token has expired",
	}}
	handler := NewApprovalHandler(svc, "http://localhost:3000")

	req := httptest.NewRequest(http.MethodGet,
		"/api/remote-work/email-approval?token=abc.def&role=hr&action=reject", nil)
	rec := httptest.NewRecorder()

	handler.RemoteEmailApproval(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)

	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/remote-work/status", location.Path)
	assert.Equal(t, "error", location.Query().Get("notification"))
	assert.Equal(t, "Token has expired", location.Query().Get("message"))
}

func TestEmailApproval_MissingParameters(t *testing.T) {
	svc := &fakeApprovalService{}
	handler := NewApprovalHandler(svc, "http://localhost:3000")

	req := httptest.NewRequest(http.MethodGet, "/api/leaves/email-approval?role=manager", nil)
	rec := httptest.NewRecorder()

	handler.LeaveEmailApproval(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.False(t, svc.called)

	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "error", location.Query().Get("notification"))
	assert.Equal(t, "Missing required parameters", location.Query().Get("message"))
}

func TestEmailApproval_InvalidRole(t *testing.T) {
	svc := &fakeApprovalService{}
	handler := NewApprovalHandler(svc, "http://localhost:3000")

	req := httptest.NewRequest(http.MethodGet,
		"/api/leaves/email-approval?token=abc.def&role=ceo&action=approve", nil)
	rec := httptest.NewRecorder()

	handler.LeaveEmailApproval(rec, req)

	assert.False(t, svc.called)

	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "Invalid approval role", location.Query().Get("message"))
}

func TestEmailApproval_InvalidAction(t *testing.T) {
	svc := &fakeApprovalService{}
	handler := NewApprovalHandler(svc, "http://localhost:3000")

	req := httptest.NewRequest(http.MethodGet,
		"/api/leaves/email-approval?token=abc.def&role=manager&action=maybe", nil)
	rec := httptest.NewRecorder()

	handler.LeaveEmailApproval(rec, req)

	assert.False(t, svc.called)

	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "Invalid approval action", location.Query().Get("message"))
}
