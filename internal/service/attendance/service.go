package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/attendance"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/employee"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/pkg/gateway"
)

// Gateway is the slice of the external attendance client the sync needs.
type Gateway interface {
	FetchEmployees(ctx context.Context) ([]gateway.EmployeeRecord, error)
	FetchPunchLogs(ctx context.Context, startDate, endDate time.Time) ([]gateway.PunchRecord, error)
}

const punchSource = "biometric_device"

type SyncServiceImpl struct {
	gateway      Gateway
	punchRepo    attendance.PunchEventRepository
	employeeRepo employee.EmployeeRepository
}

func NewSyncService(
	gw Gateway,
	punchRepo attendance.PunchEventRepository,
	employeeRepo employee.EmployeeRepository,
) attendance.SyncService {
	return &SyncServiceImpl{
		gateway:      gw,
		punchRepo:    punchRepo,
		employeeRepo: employeeRepo,
	}
}

// SyncPunchLogs implements attendance.SyncService.
// Events are reconciled one at a time: a bad record is logged and counted as
// skipped, and the rest of the batch continues. Re-running the same range is
// safe because the insert is keyed on the dedup triple.
func (s *SyncServiceImpl) SyncPunchLogs(ctx context.Context, startDate, endDate time.Time) (attendance.SyncResult, error) {
	records, err := s.gateway.FetchPunchLogs(ctx, startDate, endDate)
	if err != nil {
		return attendance.SyncResult{}, fmt.Errorf("failed to fetch punch logs: %w", err)
	}

	result := attendance.SyncResult{Total: len(records)}

	for _, record := range records {
		punchTime, err := record.Timestamp()
		if err != nil {
			slog.Error("Skipping punch log with unparseable timestamp",
				"user_id", record.UserID, "punch_time", record.PunchTime, "error", err)
			result.Skipped++
			continue
		}

		event := attendance.PunchEvent{
			DeviceUserID: string(record.UserID),
			State:        attendance.PunchState(record.State),
			PunchTime:    punchTime,
			VerifyMode:   record.VerifyMode,
			Source:       punchSource,
		}

		inserted, err := s.punchRepo.CreateIfAbsent(ctx, event)
		if err != nil {
			slog.Error("Failed to store punch event",
				"user_id", event.DeviceUserID, "state", event.State,
				"punch_time", event.PunchTime, "error", err)
			result.Skipped++
			continue
		}

		if inserted {
			result.Synced++
		} else {
			result.Skipped++
		}
	}

	slog.Info("Punch log sync finished",
		"synced", result.Synced, "skipped", result.Skipped, "total", result.Total)
	return result, nil
}

// SyncEmployees implements attendance.SyncService.
func (s *SyncServiceImpl) SyncEmployees(ctx context.Context) (attendance.RosterSyncResult, error) {
	records, err := s.gateway.FetchEmployees(ctx)
	if err != nil {
		return attendance.RosterSyncResult{}, fmt.Errorf("failed to fetch employee roster: %w", err)
	}

	result := attendance.RosterSyncResult{Total: len(records)}

	for _, record := range records {
		created, err := s.employeeRepo.UpsertFromRoster(ctx, employee.RosterRecord{
			DeviceUserID: string(record.UserID),
			FullName:     record.Name,
		})
		if err != nil {
			slog.Error("Failed to upsert roster employee",
				"user_id", record.UserID, "error", err)
			continue
		}

		if created {
			result.Synced++
		} else {
			result.Updated++
		}
	}

	slog.Info("Roster sync finished",
		"synced", result.Synced, "updated", result.Updated, "total", result.Total)
	return result, nil
}

// RunScheduledSync implements attendance.SyncService.
func (s *SyncServiceImpl) RunScheduledSync(ctx context.Context) error {
	today := time.Now()
	_, err := s.SyncPunchLogs(ctx, today, today)
	return err
}
