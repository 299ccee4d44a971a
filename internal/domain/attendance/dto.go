package attendance

import (
	"time"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/pkg/validator"
)

// ========================================
// SYNC DTOs
// ========================================

type SyncLogsRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *SyncLogsRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOk := validator.IsValidDate(r.StartDate)
	if validator.IsEmpty(r.StartDate) || !startOk {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}

	end, endOk := validator.IsValidDate(r.EndDate)
	if validator.IsEmpty(r.EndDate) || !endOk {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if startOk && endOk && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Range returns the parsed date range. Validate must have passed.
func (r *SyncLogsRequest) Range() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return start, end
}

// SyncResult reports one punch-log reconciliation run.
type SyncResult struct {
	Synced  int `json:"synced"`
	Skipped int `json:"skipped"`
	Total   int `json:"total"`
}

// RosterSyncResult reports one employee-roster sync run.
type RosterSyncResult struct {
	Synced  int `json:"synced"`
	Updated int `json:"updated"`
	Total   int `json:"total"`
}

// ========================================
// REPORT DTOs
// ========================================

// DayStatus labels one report day.
type DayStatus string

const (
	DayStatusPresent DayStatus = "Present"
	DayStatusAbsent  DayStatus = "Absent"
	DayStatusHoliday DayStatus = "Holiday"
	DayStatusFuture  DayStatus = "Future"
)

// DaySummary is one day of the monthly attendance report. It is computed on
// demand and never persisted. Hours carries the "Hh Mm" display form, or the
// holiday name on holiday rows.
type DaySummary struct {
	Date          string    `json:"date"`
	Day           string    `json:"day"`
	TimeIn        string    `json:"time_in"`
	TimeOut       string    `json:"time_out"`
	Hours         string    `json:"hours"`
	WorkedMinutes int       `json:"worked_minutes"`
	Status        DayStatus `json:"status"`
}

// WeekSummary is one Monday-started calendar week of the report: five days,
// or seven for weekend-working employees.
type WeekSummary struct {
	StartDate  string       `json:"start_date"`
	EndDate    string       `json:"end_date"`
	Days       []DaySummary `json:"days"`
	TotalHours string       `json:"total_hours"`
}
