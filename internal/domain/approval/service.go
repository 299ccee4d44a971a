package approval

import (
	"context"
)

// Service drives a leave or remote-work application through its approval
// stages in response to a clicked email link. Outcomes are always redirect
// intents: double clicks and out-of-order approvals are expected inputs, not
// errors.
type Service interface {
	ActOnToken(ctx context.Context, tokenString string, role Role, action Action) RedirectIntent
}
