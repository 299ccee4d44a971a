package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/employee"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, device_user_id, full_name, email, manager_id, permanent_date, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.DeviceUserID, &emp.FullName, &emp.Email,
		&emp.ManagerID, &emp.PermanentDate, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return emp, nil
}

// GetManager implements employee.EmployeeRepository.
func (r *employeeRepository) GetManager(ctx context.Context, employeeID string) (*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.id, m.device_user_id, m.full_name, m.email, m.manager_id, m.permanent_date, m.created_at, m.updated_at
		FROM employees e
		JOIN employees m ON m.id = e.manager_id
		WHERE e.id = $1
	`

	var mgr employee.Employee
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&mgr.ID, &mgr.DeviceUserID, &mgr.FullName, &mgr.Email,
		&mgr.ManagerID, &mgr.PermanentDate, &mgr.CreatedAt, &mgr.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // employee has no reporting manager
		}
		return nil, fmt.Errorf("failed to get manager: %w", err)
	}

	return &mgr, nil
}

// UpsertFromRoster implements employee.EmployeeRepository.
func (r *employeeRepository) UpsertFromRoster(ctx context.Context, record employee.RosterRecord) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (device_user_id, full_name)
		VALUES ($1, $2)
		ON CONFLICT (device_user_id)
		DO UPDATE SET full_name = EXCLUDED.full_name, updated_at = NOW()
		RETURNING (xmax = 0) AS inserted
	`

	var inserted bool
	err := q.QueryRow(ctx, query, record.DeviceUserID, record.FullName).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("failed to upsert employee from roster: %w", err)
	}

	return inserted, nil
}
