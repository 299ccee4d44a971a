package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/attendance"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) attendance.HolidayRepository {
	return &holidayRepository{db: db}
}

// GetByRange implements attendance.HolidayRepository.
func (r *holidayRepository) GetByRange(ctx context.Context, from, to time.Time) ([]attendance.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, date
		FROM holidays
		WHERE date >= $1 AND date < $2
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []attendance.Holiday
	for rows.Next() {
		var holiday attendance.Holiday
		if err := rows.Scan(&holiday.ID, &holiday.Name, &holiday.Date); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, holiday)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holidays: %w", err)
	}

	return holidays, nil
}
