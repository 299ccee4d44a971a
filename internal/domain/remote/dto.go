package remote

import (
	"time"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/pkg/validator"
)

type ApplyRemoteRequest struct {
	EmployeeID string `json:"employee_id"`
	FromDate   string `json:"from_date"`
	ToDate     string `json:"to_date"`
	Reason     string `json:"reason"`
}

func (r *ApplyRemoteRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	from, fromOk := validator.IsValidDate(r.FromDate)
	if !fromOk {
		errs = append(errs, validator.ValidationError{
			Field:   "from_date",
			Message: "from_date must be a valid date (YYYY-MM-DD)",
		})
	}

	to, toOk := validator.IsValidDate(r.ToDate)
	if !toOk {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if fromOk && toOk && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date must not be before from_date",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Range returns the parsed date range. Validate must have passed.
func (r *ApplyRemoteRequest) Range() (time.Time, time.Time) {
	from, _ := validator.IsValidDate(r.FromDate)
	to, _ := validator.IsValidDate(r.ToDate)
	return from, to
}

// NumberOfDays returns the inclusive day count of the requested range.
func (r *ApplyRemoteRequest) NumberOfDays() int {
	from, to := r.Range()
	return int(to.Sub(from).Hours()/24) + 1
}

// Eligibility is the soft result of the quota checks: a denial is an
// expected outcome with a user-facing reason, not an error.
type Eligibility struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

type ApplyRemoteResponse struct {
	ApplicationID string `json:"application_id"`
}
