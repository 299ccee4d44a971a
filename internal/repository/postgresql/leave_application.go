package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/approval"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/leave"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/pkg/database"
)

type leaveApplicationRepository struct {
	db *database.DB
}

func NewLeaveApplicationRepository(db *database.DB) leave.LeaveApplicationRepository {
	return &leaveApplicationRepository{db: db}
}

// Create implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepository) Create(ctx context.Context, application leave.LeaveApplication) (leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_applications (
			id, employee_id, leave_type, start_date, end_date, number_of_days, reason,
			manager_status, hr_status, final_approved
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		application.ID,
		application.EmployeeID,
		application.LeaveType,
		application.StartDate,
		application.EndDate,
		application.NumberOfDays,
		application.Reason,
		int(application.ManagerStatus),
		int(application.HRStatus),
		application.FinalApproved,
	).Scan(&application.CreatedAt, &application.UpdatedAt)
	if err != nil {
		return leave.LeaveApplication{}, fmt.Errorf("failed to create leave application: %w", err)
	}

	return application, nil
}

// GetByID implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepository) GetByID(ctx context.Context, id string) (leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.employee_id, l.leave_type, l.start_date, l.end_date, l.number_of_days,
			   l.reason, l.manager_status, l.hr_status, l.final_approved,
			   l.created_at, l.updated_at,
			   e.full_name AS employee_name
		FROM leave_applications l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE l.id = $1
	`

	var application leave.LeaveApplication
	var managerStatus, hrStatus int
	err := q.QueryRow(ctx, query, id).Scan(
		&application.ID, &application.EmployeeID, &application.LeaveType,
		&application.StartDate, &application.EndDate, &application.NumberOfDays,
		&application.Reason, &managerStatus, &hrStatus, &application.FinalApproved,
		&application.CreatedAt, &application.UpdatedAt,
		&application.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveApplication{}, leave.ErrLeaveNotFound
		}
		return leave.LeaveApplication{}, fmt.Errorf("failed to get leave application by ID: %w", err)
	}

	application.ManagerStatus = approval.Status(managerStatus)
	application.HRStatus = approval.Status(hrStatus)
	return application, nil
}

// UpdateManagerDecision implements leave.LeaveApplicationRepository.
// The pending-state check and the write are one conditional UPDATE, so two
// simultaneous clicks on the same link cannot both succeed.
func (r *leaveApplicationRepository) UpdateManagerDecision(ctx context.Context, id string, status approval.Status) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_applications
		SET manager_status = $1, updated_at = NOW()
		WHERE id = $2 AND manager_status = 0
	`

	tag, err := q.Exec(ctx, query, int(status), id)
	if err != nil {
		return false, fmt.Errorf("failed to update manager decision: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// UpdateHRDecision implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepository) UpdateHRDecision(ctx context.Context, id string, status approval.Status) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_applications
		SET hr_status = $1,
			final_approved = ($1 = 1),
			updated_at = NOW()
		WHERE id = $2 AND hr_status = 0 AND manager_status = 1
	`

	tag, err := q.Exec(ctx, query, int(status), id)
	if err != nil {
		return false, fmt.Errorf("failed to update HR decision: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}
