package employee

import (
	"time"
)

// Employee is the read model this core needs from the employee records
// maintained elsewhere: identity, the device id used by the biometric
// attendance machine, the reporting manager, and the confirmation date that
// gates remote-work eligibility.
type Employee struct {
	ID            string
	DeviceUserID  string
	FullName      string
	Email         *string
	ManagerID     *string
	PermanentDate *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsPermanent reports whether the employee has passed probation.
func (e Employee) IsPermanent() bool {
	return e.PermanentDate != nil
}
