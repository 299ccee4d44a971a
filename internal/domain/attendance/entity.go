package attendance

import (
	"time"
)

// PunchState is the raw state reported by the biometric device.
type PunchState string

const (
	PunchStateCheckIn  PunchState = "0"
	PunchStateCheckOut PunchState = "1"
)

// PunchEvent is one punch on the attendance device. Rows are append-only and
// deduplicated on the (DeviceUserID, State, PunchTime) triple; VerifyMode and
// Source are informational and take no part in identity.
type PunchEvent struct {
	ID           string
	DeviceUserID string
	State        PunchState
	PunchTime    time.Time
	VerifyMode   *int
	Source       string
	CreatedAt    time.Time
}

// Holiday is a company holiday, matched against report days by calendar date.
type Holiday struct {
	ID   string
	Name string
	Date time.Time
}

// SameDay reports whether the holiday falls on the given calendar date.
// Comparison is by Y-M-D components so a timezone offset on either side
// cannot shift the match.
func (h Holiday) SameDay(t time.Time) bool {
	hy, hm, hd := h.Date.Date()
	ty, tm, td := t.Date()
	return hy == ty && hm == tm && hd == td
}

// OfficeWindow is the office-hours window worked time is clipped to.
type OfficeWindow struct {
	StartHour     int
	StartMinute   int
	EndHour       int
	EndMinute     int
	WorksWeekends bool
}

// Start returns the window start on the given date.
func (w OfficeWindow) Start(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), w.StartHour, w.StartMinute, 0, 0, date.Location())
}

// End returns the window end on the given date.
func (w OfficeWindow) End(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), w.EndHour, w.EndMinute, 0, 0, date.Location())
}
