package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/attendance"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/pkg/database"
)

type punchEventRepository struct {
	db *database.DB
}

func NewPunchEventRepository(db *database.DB) attendance.PunchEventRepository {
	return &punchEventRepository{db: db}
}

// CreateIfAbsent implements attendance.PunchEventRepository.
// The unique index on (device_user_id, state, punch_time) carries the dedup
// invariant; the insert and the existence check are a single statement so
// concurrent sync runs cannot race each other into a duplicate.
func (r *punchEventRepository) CreateIfAbsent(ctx context.Context, event attendance.PunchEvent) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO punch_events (device_user_id, state, punch_time, verify_mode, source)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (device_user_id, state, punch_time) DO NOTHING
	`

	tag, err := q.Exec(ctx, query,
		event.DeviceUserID,
		string(event.State),
		event.PunchTime,
		event.VerifyMode,
		event.Source,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert punch event: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// GetByEmployeeAndRange implements attendance.PunchEventRepository.
func (r *punchEventRepository) GetByEmployeeAndRange(ctx context.Context, deviceUserID string, from, to time.Time) ([]attendance.PunchEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, device_user_id, state, punch_time, verify_mode, source, created_at
		FROM punch_events
		WHERE device_user_id = $1
		  AND punch_time >= $2
		  AND punch_time < $3
		ORDER BY punch_time ASC
	`

	rows, err := q.Query(ctx, query, deviceUserID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query punch events: %w", err)
	}
	defer rows.Close()

	var events []attendance.PunchEvent
	for rows.Next() {
		var event attendance.PunchEvent
		var state string
		if err := rows.Scan(
			&event.ID, &event.DeviceUserID, &state, &event.PunchTime,
			&event.VerifyMode, &event.Source, &event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan punch event: %w", err)
		}
		event.State = attendance.PunchState(state)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate punch events: %w", err)
	}

	return events, nil
}
