package employee

import (
	"context"
)

// RosterRecord is one employee row as reported by the attendance device.
type RosterRecord struct {
	DeviceUserID string
	FullName     string
}

// EmployeeRepository defines the read model plus the roster upsert used by
// the attendance sync job. Everything else about employees is owned by the
// CRUD side of the portal.
type EmployeeRepository interface {
	// GetByID retrieves an employee by internal id.
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetManager retrieves the reporting manager of an employee, or nil when
	// the employee has none.
	GetManager(ctx context.Context, employeeID string) (*Employee, error)

	// UpsertFromRoster creates the employee if the device user id is new and
	// refreshes the name otherwise. Returns true when a row was created.
	UpsertFromRoster(ctx context.Context, record RosterRecord) (bool, error)
}
