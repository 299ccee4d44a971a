package attendance

import (
	"context"
	"time"
)

// PunchEventRepository is the append-only punch log.
type PunchEventRepository interface {
	// CreateIfAbsent inserts the event unless a row with the same
	// (DeviceUserID, State, PunchTime) triple already exists. Returns true
	// when a row was inserted. The insert is atomic so concurrent or retried
	// sync runs cannot duplicate an event.
	CreateIfAbsent(ctx context.Context, event PunchEvent) (bool, error)

	// GetByEmployeeAndRange retrieves events for one device user id within
	// [from, to), ordered by punch time ascending.
	GetByEmployeeAndRange(ctx context.Context, deviceUserID string, from, to time.Time) ([]PunchEvent, error)
}

// HolidayRepository reads the holiday calendar maintained elsewhere.
type HolidayRepository interface {
	GetByRange(ctx context.Context, from, to time.Time) ([]Holiday, error)
}
