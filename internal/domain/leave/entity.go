package leave

import (
	"time"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/approval"
)

// LeaveApplication goes through two independent approval stages. Both
// ManagerStatus and HRStatus must reach approved before FinalApproved is set;
// either stage reaching rejected terminates the workflow.
type LeaveApplication struct {
	ID            string
	EmployeeID    string
	LeaveType     string
	StartDate     time.Time
	EndDate       time.Time
	NumberOfDays  int
	Reason        string
	ManagerStatus approval.Status
	HRStatus      approval.Status
	FinalApproved bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO
	EmployeeName *string
}
