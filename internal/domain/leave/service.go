package leave

import (
	"context"
)

// LeaveService accepts leave applications and starts the two-stage approval
// workflow (manager first, then HR).
type LeaveService interface {
	Apply(ctx context.Context, req ApplyLeaveRequest) (ApplyLeaveResponse, error)
}
