package response

import (
	"errors"
	"net/http"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/attendance"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/employee"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/leave"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/remote"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/pkg/gateway"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// The external attendance service failing is not this service's fault.
	var gatewayErr *gateway.GatewayError
	if errors.As(err, &gatewayErr) {
		BadGateway(w, "Attendance service unavailable")
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidReportMonth):
		BadRequest(w, "Invalid report month", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave application not found")

	// Remote work domain errors
	case errors.Is(err, remote.ErrApplicationNotFound):
		NotFound(w, "Remote work application not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
