package leave

import (
	"context"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/approval"
)

// LeaveApplicationRepository persists the two-stage leave workflow. The
// decision updates are conditional writes: they only apply while the target
// stage is still pending, so two simultaneous clicks on the same emailed
// link cannot both succeed.
type LeaveApplicationRepository interface {
	Create(ctx context.Context, application LeaveApplication) (LeaveApplication, error)

	GetByID(ctx context.Context, id string) (LeaveApplication, error)

	// UpdateManagerDecision moves the manager stage out of pending. Returns
	// false when the stage was no longer pending.
	UpdateManagerDecision(ctx context.Context, id string, status approval.Status) (bool, error)

	// UpdateHRDecision moves the HR stage out of pending. It only applies
	// when the manager stage is already approved, and sets final approval
	// when the HR decision is an approval. Returns false when no row matched.
	UpdateHRDecision(ctx context.Context, id string, status approval.Status) (bool, error)
}
