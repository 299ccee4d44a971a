package remote

import (
	"context"
	"time"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/approval"
)

// RemoteWorkRepository persists remote-work applications and answers the
// quota queries the eligibility engine runs before a submission is allowed.
type RemoteWorkRepository interface {
	Create(ctx context.Context, application RemoteWorkApplication) (RemoteWorkApplication, error)

	GetByID(ctx context.Context, id string) (RemoteWorkApplication, error)

	ListByEmployee(ctx context.Context, employeeID string) ([]RemoteWorkApplication, error)

	// ApprovedDaysSince sums NumberOfDays across approved, non-deleted
	// applications whose FromDate is on or after since.
	ApprovedDaysSince(ctx context.Context, employeeID string, since time.Time) (int, error)

	// HasOverlapping reports whether any non-deleted application of the
	// employee, in any approval state, overlaps the inclusive [from, to]
	// range.
	HasOverlapping(ctx context.Context, employeeID string, from, to time.Time) (bool, error)

	// UpdateDecision moves a still-pending application to the given status
	// and records who decided. Returns false when the application was no
	// longer pending.
	UpdateDecision(ctx context.Context, id string, status approval.Status, decidedBy string) (bool, error)

	// SoftDelete marks the application deleted. Returns false when no active
	// application matched.
	SoftDelete(ctx context.Context, id string, employeeID string) (bool, error)
}
