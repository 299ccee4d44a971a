package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/approval"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/remote"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/pkg/database"
)

type remoteWorkRepository struct {
	db *database.DB
}

func NewRemoteWorkRepository(db *database.DB) remote.RemoteWorkRepository {
	return &remoteWorkRepository{db: db}
}

// Create implements remote.RemoteWorkRepository.
func (r *remoteWorkRepository) Create(ctx context.Context, application remote.RemoteWorkApplication) (remote.RemoteWorkApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO remote_work_applications (
			id, employee_id, from_date, to_date, number_of_days, reason,
			approval_status, manager_id, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		application.ID,
		application.EmployeeID,
		application.FromDate,
		application.ToDate,
		application.NumberOfDays,
		application.Reason,
		int(application.ApprovalStatus),
		application.ManagerID,
		application.Status,
	).Scan(&application.CreatedAt, &application.UpdatedAt)
	if err != nil {
		return remote.RemoteWorkApplication{}, fmt.Errorf("failed to create remote work application: %w", err)
	}

	return application, nil
}

// GetByID implements remote.RemoteWorkRepository.
func (r *remoteWorkRepository) GetByID(ctx context.Context, id string) (remote.RemoteWorkApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.from_date, a.to_date, a.number_of_days, a.reason,
			   a.approval_status, a.approved_by, a.approved_date, a.manager_id, a.status,
			   a.created_at, a.updated_at,
			   e.full_name AS employee_name
		FROM remote_work_applications a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1 AND a.status <> -1
	`

	var application remote.RemoteWorkApplication
	var approvalStatus int
	err := q.QueryRow(ctx, query, id).Scan(
		&application.ID, &application.EmployeeID, &application.FromDate,
		&application.ToDate, &application.NumberOfDays, &application.Reason,
		&approvalStatus, &application.ApprovedBy, &application.ApprovedDate,
		&application.ManagerID, &application.Status,
		&application.CreatedAt, &application.UpdatedAt,
		&application.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return remote.RemoteWorkApplication{}, remote.ErrApplicationNotFound
		}
		return remote.RemoteWorkApplication{}, fmt.Errorf("failed to get remote work application by ID: %w", err)
	}

	application.ApprovalStatus = approval.Status(approvalStatus)
	return application, nil
}

// ListByEmployee implements remote.RemoteWorkRepository.
func (r *remoteWorkRepository) ListByEmployee(ctx context.Context, employeeID string) ([]remote.RemoteWorkApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, from_date, to_date, number_of_days, reason,
			   approval_status, approved_by, approved_date, manager_id, status,
			   created_at, updated_at
		FROM remote_work_applications
		WHERE employee_id = $1 AND status <> -1
		ORDER BY from_date DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query remote work applications: %w", err)
	}
	defer rows.Close()

	var applications []remote.RemoteWorkApplication
	for rows.Next() {
		var application remote.RemoteWorkApplication
		var approvalStatus int
		if err := rows.Scan(
			&application.ID, &application.EmployeeID, &application.FromDate,
			&application.ToDate, &application.NumberOfDays, &application.Reason,
			&approvalStatus, &application.ApprovedBy, &application.ApprovedDate,
			&application.ManagerID, &application.Status,
			&application.CreatedAt, &application.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan remote work application: %w", err)
		}
		application.ApprovalStatus = approval.Status(approvalStatus)
		applications = append(applications, application)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate remote work applications: %w", err)
	}

	return applications, nil
}

// ApprovedDaysSince implements remote.RemoteWorkRepository.
func (r *remoteWorkRepository) ApprovedDaysSince(ctx context.Context, employeeID string, since time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(number_of_days), 0)
		FROM remote_work_applications
		WHERE employee_id = $1
		  AND approval_status = 1
		  AND status <> -1
		  AND from_date >= $2
	`

	var total int
	if err := q.QueryRow(ctx, query, employeeID, since).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum approved remote days: %w", err)
	}

	return total, nil
}

// HasOverlapping implements remote.RemoteWorkRepository.
func (r *remoteWorkRepository) HasOverlapping(ctx context.Context, employeeID string, from, to time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM remote_work_applications
			WHERE employee_id = $1
			  AND status <> -1
			  AND from_date <= $3
			  AND to_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check overlapping remote work applications: %w", err)
	}

	return exists, nil
}

// UpdateDecision implements remote.RemoteWorkRepository.
// Conditional on the application still being pending, for the same reason as
// the leave decision updates.
func (r *remoteWorkRepository) UpdateDecision(ctx context.Context, id string, status approval.Status, decidedBy string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE remote_work_applications
		SET approval_status = $1,
			approved_by = $2,
			approved_date = NOW(),
			updated_at = NOW()
		WHERE id = $3 AND approval_status = 0 AND status <> -1
	`

	tag, err := q.Exec(ctx, query, int(status), decidedBy, id)
	if err != nil {
		return false, fmt.Errorf("failed to update remote work decision: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// SoftDelete implements remote.RemoteWorkRepository.
func (r *remoteWorkRepository) SoftDelete(ctx context.Context, id string, employeeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE remote_work_applications
		SET status = -1, updated_at = NOW()
		WHERE id = $1 AND employee_id = $2 AND status <> -1
	`

	tag, err := q.Exec(ctx, query, id, employeeID)
	if err != nil {
		return false, fmt.Errorf("failed to soft delete remote work application: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}
