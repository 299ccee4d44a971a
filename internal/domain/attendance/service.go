package attendance

import (
	"context"
	"time"
)

// SyncService pulls punch data from the external attendance device and
// reconciles it into the local punch log.
type SyncService interface {
	// SyncPunchLogs fetches punch logs for the inclusive date range and
	// merges them, at most once per (device user, state, timestamp) triple.
	SyncPunchLogs(ctx context.Context, startDate, endDate time.Time) (SyncResult, error)

	// SyncEmployees refreshes the employee roster from the device service.
	SyncEmployees(ctx context.Context) (RosterSyncResult, error)

	// RunScheduledSync is the scheduler entry point; it syncs today's logs.
	RunScheduledSync(ctx context.Context) error
}

// ReportService derives worked-hours summaries from the punch log.
type ReportService interface {
	// OfficeWindowFor resolves the employee's office-hours tier.
	OfficeWindowFor(employeeID string) OfficeWindow

	// BuildMonthlySummary computes the calendar-week report for one employee
	// and month. Nothing is persisted.
	BuildMonthlySummary(ctx context.Context, employeeID string, year int, month time.Month) ([]WeekSummary, error)
}
