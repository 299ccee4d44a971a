package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/config"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/attendance"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/employee"
)

type fakePunchRepo struct {
	events []attendance.PunchEvent
}

func (r *fakePunchRepo) CreateIfAbsent(ctx context.Context, event attendance.PunchEvent) (bool, error) {
	return false, nil
}

func (r *fakePunchRepo) GetByEmployeeAndRange(ctx context.Context, deviceUserID string, from, to time.Time) ([]attendance.PunchEvent, error) {
	var inRange []attendance.PunchEvent
	for _, event := range r.events {
		if !event.PunchTime.Before(from) && event.PunchTime.Before(to) {
			inRange = append(inRange, event)
		}
	}
	return inRange, nil
}

type fakeHolidayRepo struct {
	holidays []attendance.Holiday
}

func (r *fakeHolidayRepo) GetByRange(ctx context.Context, from, to time.Time) ([]attendance.Holiday, error) {
	return r.holidays, nil
}

type fakeEmployeeRepo struct {
	emp employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if id != r.emp.ID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return r.emp, nil
}

func (r *fakeEmployeeRepo) GetManager(ctx context.Context, employeeID string) (*employee.Employee, error) {
	return nil, nil
}

func (r *fakeEmployeeRepo) UpsertFromRoster(ctx context.Context, record employee.RosterRecord) (bool, error) {
	return false, nil
}

func newTestService(t *testing.T, events []attendance.PunchEvent, holidays []attendance.Holiday, now time.Time) *ReportServiceImpl {
	t.Helper()
	svc := NewReportService(
		&fakePunchRepo{events: events},
		&fakeHolidayRepo{holidays: holidays},
		&fakeEmployeeRepo{emp: employee.Employee{ID: "emp-1", DeviceUserID: "101"}},
		config.OfficeHoursConfig{
			ExtendedTierIDs: []string{"emp-extended"},
			WeekendTierIDs:  []string{"emp-weekend"},
		},
	).(*ReportServiceImpl)
	svc.now = func() time.Time { return now }
	return svc
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02 15:04:05", value, time.Local)
	require.NoError(t, err)
	return parsed
}

func punchEvent(t *testing.T, state attendance.PunchState, when string) attendance.PunchEvent {
	t.Helper()
	return attendance.PunchEvent{
		DeviceUserID: "101",
		State:        state,
		PunchTime:    at(t, when),
	}
}

func TestOfficeWindowFor_Tiers(t *testing.T) {
	svc := newTestService(t, nil, nil, at(t, "2025-06-15 12:00:00"))

	extended := svc.OfficeWindowFor("emp-extended")
	assert.Equal(t, 8, extended.StartHour)
	assert.Equal(t, 18, extended.EndHour)
	assert.False(t, extended.WorksWeekends)

	weekend := svc.OfficeWindowFor("emp-weekend")
	assert.Equal(t, 9, weekend.StartHour)
	assert.True(t, weekend.WorksWeekends)

	standard := svc.OfficeWindowFor("emp-1")
	assert.Equal(t, 9, standard.StartHour)
	assert.Equal(t, 17, standard.EndHour)
	assert.Equal(t, 30, standard.EndMinute)
	assert.False(t, standard.WorksWeekends)
}

func TestBuildMonthlySummary_WeeksSpanMonthEdges(t *testing.T) {
	// June 2025 starts on a Sunday, so the first report week begins in May.
	svc := newTestService(t, nil, nil, at(t, "2025-07-15 12:00:00"))

	weeks, err := svc.BuildMonthlySummary(context.Background(), "emp-1", 2025, time.June)
	require.NoError(t, err)

	require.Len(t, weeks, 6)
	assert.Equal(t, "2025-05-26", weeks[0].StartDate)
	assert.Equal(t, "2025-06-01", weeks[0].EndDate)
	assert.Equal(t, "2025-06-30", weeks[5].StartDate)
	assert.Equal(t, "2025-07-06", weeks[5].EndDate)

	for _, week := range weeks {
		assert.Len(t, week.Days, 5)
		assert.Equal(t, "Monday", week.Days[0].Day)
		assert.Equal(t, "Friday", week.Days[4].Day)
	}
}

func TestBuildMonthlySummary_ExactMonth(t *testing.T) {
	// February 2021 is exactly four Monday-started weeks.
	svc := newTestService(t, nil, nil, at(t, "2021-03-15 12:00:00"))

	weeks, err := svc.BuildMonthlySummary(context.Background(), "emp-1", 2021, time.February)
	require.NoError(t, err)

	require.Len(t, weeks, 4)
	assert.Equal(t, "2021-02-01", weeks[0].StartDate)
	assert.Equal(t, "2021-02-22", weeks[3].StartDate)
	assert.Equal(t, "2021-02-28", weeks[3].EndDate)
}

func TestBuildMonthlySummary_PresentDayClippedToWindow(t *testing.T) {
	// Punches at 08:30 and 18:00 against the 09:00-17:30 window yield exactly
	// 8h 30m of counted time.
	events := []attendance.PunchEvent{
		punchEvent(t, attendance.PunchStateCheckIn, "2025-06-02 08:30:00"),
		punchEvent(t, attendance.PunchStateCheckOut, "2025-06-02 18:00:00"),
	}
	svc := newTestService(t, events, nil, at(t, "2025-07-15 12:00:00"))

	weeks, err := svc.BuildMonthlySummary(context.Background(), "emp-1", 2025, time.June)
	require.NoError(t, err)

	day := weeks[1].Days[0]
	assert.Equal(t, "2025-06-02", day.Date)
	assert.Equal(t, attendance.DayStatusPresent, day.Status)
	assert.Equal(t, "08:30", day.TimeIn)
	assert.Equal(t, "18:00", day.TimeOut)
	assert.Equal(t, 510, day.WorkedMinutes)
	assert.Equal(t, "8h 30m", day.Hours)
	assert.Equal(t, "8h 30m", weeks[1].TotalHours)
}

func TestBuildMonthlySummary_SinglePunchDay(t *testing.T) {
	events := []attendance.PunchEvent{
		punchEvent(t, attendance.PunchStateCheckIn, "2025-06-03 09:05:00"),
	}
	svc := newTestService(t, events, nil, at(t, "2025-07-15 12:00:00"))

	weeks, err := svc.BuildMonthlySummary(context.Background(), "emp-1", 2025, time.June)
	require.NoError(t, err)

	day := weeks[1].Days[1]
	assert.Equal(t, attendance.DayStatusPresent, day.Status)
	assert.Equal(t, "09:05", day.TimeIn)
	assert.Equal(t, "N/A", day.TimeOut)
	assert.Equal(t, 0, day.WorkedMinutes)
}

func TestBuildMonthlySummary_PunchesOutsideWindowCountZero(t *testing.T) {
	events := []attendance.PunchEvent{
		punchEvent(t, attendance.PunchStateCheckIn, "2025-06-02 18:00:00"),
		punchEvent(t, attendance.PunchStateCheckOut, "2025-06-02 19:00:00"),
	}
	svc := newTestService(t, events, nil, at(t, "2025-07-15 12:00:00"))

	weeks, err := svc.BuildMonthlySummary(context.Background(), "emp-1", 2025, time.June)
	require.NoError(t, err)

	day := weeks[1].Days[0]
	assert.Equal(t, attendance.DayStatusPresent, day.Status)
	assert.Equal(t, 0, day.WorkedMinutes)
	assert.Equal(t, "0h 0m", day.Hours)
}

func TestBuildMonthlySummary_HolidayNameShownAsHours(t *testing.T) {
	holidays := []attendance.Holiday{
		{ID: "h-1", Name: "Eid al-Adha", Date: at(t, "2025-06-06 00:00:00")},
	}
	svc := newTestService(t, nil, holidays, at(t, "2025-07-15 12:00:00"))

	weeks, err := svc.BuildMonthlySummary(context.Background(), "emp-1", 2025, time.June)
	require.NoError(t, err)

	day := weeks[1].Days[4]
	assert.Equal(t, "2025-06-06", day.Date)
	assert.Equal(t, attendance.DayStatusHoliday, day.Status)
	assert.Equal(t, "Eid al-Adha", day.Hours)
	assert.Equal(t, 0, day.WorkedMinutes)
}

func TestBuildMonthlySummary_WorkedHolidayCountsAsPresent(t *testing.T) {
	// Someone who punches in on a holiday worked that day; the holiday label
	// only applies to punch-less days.
	events := []attendance.PunchEvent{
		punchEvent(t, attendance.PunchStateCheckIn, "2025-06-06 09:00:00"),
		punchEvent(t, attendance.PunchStateCheckOut, "2025-06-06 17:30:00"),
	}
	holidays := []attendance.Holiday{
		{ID: "h-1", Name: "Eid al-Adha", Date: at(t, "2025-06-06 00:00:00")},
	}
	svc := newTestService(t, events, holidays, at(t, "2025-07-15 12:00:00"))

	weeks, err := svc.BuildMonthlySummary(context.Background(), "emp-1", 2025, time.June)
	require.NoError(t, err)

	day := weeks[1].Days[4]
	assert.Equal(t, "2025-06-06", day.Date)
	assert.Equal(t, attendance.DayStatusPresent, day.Status)
	assert.Equal(t, "09:00", day.TimeIn)
	assert.Equal(t, "17:30", day.TimeOut)
	assert.Equal(t, 510, day.WorkedMinutes)
	assert.Equal(t, "8h 30m", day.Hours)
}

func TestBuildMonthlySummary_FutureAndAbsentDays(t *testing.T) {
	svc := newTestService(t, nil, nil, at(t, "2025-06-03 12:00:00"))

	weeks, err := svc.BuildMonthlySummary(context.Background(), "emp-1", 2025, time.June)
	require.NoError(t, err)

	week := weeks[1]
	assert.Equal(t, attendance.DayStatusAbsent, week.Days[0].Status)
	assert.Equal(t, attendance.DayStatusAbsent, week.Days[1].Status)
	assert.Equal(t, attendance.DayStatusFuture, week.Days[2].Status)
	assert.Equal(t, attendance.DayStatusFuture, week.Days[4].Status)
}

func TestBuildMonthlySummary_WeekendTierGetsSevenDays(t *testing.T) {
	svc := NewReportService(
		&fakePunchRepo{},
		&fakeHolidayRepo{},
		&fakeEmployeeRepo{emp: employee.Employee{ID: "emp-weekend", DeviceUserID: "102"}},
		config.OfficeHoursConfig{WeekendTierIDs: []string{"emp-weekend"}},
	).(*ReportServiceImpl)
	svc.now = func() time.Time { return at(t, "2025-07-15 12:00:00") }

	weeks, err := svc.BuildMonthlySummary(context.Background(), "emp-weekend", 2025, time.June)
	require.NoError(t, err)

	for _, week := range weeks {
		assert.Len(t, week.Days, 7)
		assert.Equal(t, "Sunday", week.Days[6].Day)
	}
}

func TestBuildMonthlySummary_UnknownEmployee(t *testing.T) {
	svc := newTestService(t, nil, nil, at(t, "2025-07-15 12:00:00"))

	_, err := svc.BuildMonthlySummary(context.Background(), "emp-missing", 2025, time.June)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
