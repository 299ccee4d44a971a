package remote

import (
	"time"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/approval"
)

// Record status values (soft-delete flag).
const (
	RecordActive  = 1
	RecordDeleted = -1
)

// RemoteWorkApplication is a request to work remotely over an inclusive date
// range. Applications are soft-deleted (Status = -1), never removed, so the
// record survives for listings and audit. A deleted application is a
// retraction: it no longer counts against the rolling quotas and frees its
// dates for a new application.
type RemoteWorkApplication struct {
	ID             string
	EmployeeID     string
	FromDate       time.Time
	ToDate         time.Time
	NumberOfDays   int
	Reason         string
	ApprovalStatus approval.Status
	ApprovedBy     *string
	ApprovedDate   *time.Time
	ManagerID      *string
	Status         int
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// DTO
	EmployeeName *string
}
