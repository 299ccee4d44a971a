package remote

import (
	"context"
	"time"
)

// RemoteWorkService gates and accepts remote-work applications.
type RemoteWorkService interface {
	// CanApply runs the eligibility checks without mutating anything:
	// permanent employment, the rolling 6-month and 1-month day quotas, and
	// overlapping-date exclusivity, in that order.
	CanApply(ctx context.Context, employeeID string, requestedDays int, from, to time.Time) (Eligibility, error)

	// Apply submits a new application after CanApply passes. A denial is
	// reported through the returned Eligibility, not as an error.
	Apply(ctx context.Context, req ApplyRemoteRequest) (Eligibility, ApplyRemoteResponse, error)

	ListByEmployee(ctx context.Context, employeeID string) ([]RemoteWorkApplication, error)

	// Delete soft-deletes an application owned by the employee.
	Delete(ctx context.Context, id string, employeeID string) error
}
