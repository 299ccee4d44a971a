package report

import (
	"context"
	"fmt"
	"time"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/config"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/attendance"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/employee"
)

// Office-hours tiers. Assignment comes from configuration; everyone not
// listed works the default window.
var (
	extendedWindow = attendance.OfficeWindow{StartHour: 8, EndHour: 18}
	weekendWindow  = attendance.OfficeWindow{StartHour: 9, EndHour: 18, WorksWeekends: true}
	defaultWindow  = attendance.OfficeWindow{StartHour: 9, EndHour: 17, EndMinute: 30}
)

type ReportServiceImpl struct {
	punchRepo    attendance.PunchEventRepository
	holidayRepo  attendance.HolidayRepository
	employeeRepo employee.EmployeeRepository
	tiers        config.OfficeHoursConfig
	now          func() time.Time
}

func NewReportService(
	punchRepo attendance.PunchEventRepository,
	holidayRepo attendance.HolidayRepository,
	employeeRepo employee.EmployeeRepository,
	tiers config.OfficeHoursConfig,
) attendance.ReportService {
	return &ReportServiceImpl{
		punchRepo:    punchRepo,
		holidayRepo:  holidayRepo,
		employeeRepo: employeeRepo,
		tiers:        tiers,
		now:          time.Now,
	}
}

// OfficeWindowFor implements attendance.ReportService.
func (s *ReportServiceImpl) OfficeWindowFor(employeeID string) attendance.OfficeWindow {
	for _, id := range s.tiers.ExtendedTierIDs {
		if id == employeeID {
			return extendedWindow
		}
	}
	for _, id := range s.tiers.WeekendTierIDs {
		if id == employeeID {
			return weekendWindow
		}
	}
	return defaultWindow
}

// BuildMonthlySummary implements attendance.ReportService. The report covers
// every Monday-started calendar week that intersects the month, so the first
// and last weeks may reach into the neighbouring months.
func (s *ReportServiceImpl) BuildMonthlySummary(ctx context.Context, employeeID string, year int, month time.Month) ([]attendance.WeekSummary, error) {
	if month < time.January || month > time.December {
		return nil, attendance.ErrInvalidReportMonth
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	window := s.OfficeWindowFor(employeeID)

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	monthEnd := monthStart.AddDate(0, 1, 0)

	firstWeekStart := mondayOnOrBefore(monthStart)
	lastWeekStart := mondayOnOrBefore(monthEnd.AddDate(0, 0, -1))
	spanEnd := lastWeekStart.AddDate(0, 0, 7)

	events, err := s.punchRepo.GetByEmployeeAndRange(ctx, emp.DeviceUserID, firstWeekStart, spanEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load punch events: %w", err)
	}

	holidays, err := s.holidayRepo.GetByRange(ctx, firstWeekStart, spanEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load holidays: %w", err)
	}

	eventsByDay := groupEventsByDay(events)

	daysPerWeek := 5
	if window.WorksWeekends {
		daysPerWeek = 7
	}

	today := s.now()
	var weeks []attendance.WeekSummary

	for weekStart := firstWeekStart; !weekStart.After(lastWeekStart); weekStart = weekStart.AddDate(0, 0, 7) {
		week := attendance.WeekSummary{
			StartDate: weekStart.Format("2006-01-02"),
			EndDate:   weekStart.AddDate(0, 0, 6).Format("2006-01-02"),
		}

		totalMinutes := 0
		for i := 0; i < daysPerWeek; i++ {
			date := weekStart.AddDate(0, 0, i)
			day := s.summarizeDay(date, today, window, eventsByDay[dayKey(date)], holidays)
			totalMinutes += day.WorkedMinutes
			week.Days = append(week.Days, day)
		}

		week.TotalHours = formatMinutes(totalMinutes)
		weeks = append(weeks, week)
	}

	return weeks, nil
}

func (s *ReportServiceImpl) summarizeDay(date, today time.Time, window attendance.OfficeWindow, events []attendance.PunchEvent, holidays []attendance.Holiday) attendance.DaySummary {
	summary := attendance.DaySummary{
		Date:    date.Format("2006-01-02"),
		Day:     date.Weekday().String(),
		TimeIn:  "N/A",
		TimeOut: "N/A",
		Hours:   formatMinutes(0),
	}

	if afterDay(date, today) {
		summary.Status = attendance.DayStatusFuture
		return summary
	}

	// A punched day is a worked day; the holiday label only applies when
	// nobody came in.
	if len(events) == 0 {
		for _, holiday := range holidays {
			if holiday.SameDay(date) {
				summary.Status = attendance.DayStatusHoliday
				summary.Hours = holiday.Name
				return summary
			}
		}
		summary.Status = attendance.DayStatusAbsent
		return summary
	}

	summary.Status = attendance.DayStatusPresent

	first := events[0].PunchTime
	last := events[len(events)-1].PunchTime
	summary.TimeIn = first.Format("15:04")

	if len(events) == 1 {
		// A single punch gives no interval to measure.
		return summary
	}

	summary.TimeOut = last.Format("15:04")

	worked := clippedDuration(window, date, first, last)
	summary.WorkedMinutes = int(worked.Minutes())
	summary.Hours = formatMinutes(summary.WorkedMinutes)
	return summary
}

// clippedDuration measures the in-to-out interval restricted to the office
// window on the given date. An interval entirely outside the window, or an
// inverted one, counts as zero.
func clippedDuration(window attendance.OfficeWindow, date, in, out time.Time) time.Duration {
	start := window.Start(date)
	end := window.End(date)

	if in.Before(start) {
		in = start
	}
	if out.After(end) {
		out = end
	}
	if !out.After(in) {
		return 0
	}
	return out.Sub(in)
}

func mondayOnOrBefore(t time.Time) time.Time {
	date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}

func afterDay(date, today time.Time) bool {
	y, m, d := today.Date()
	endOfToday := time.Date(y, m, d, 0, 0, 0, 0, date.Location()).AddDate(0, 0, 1)
	return !date.Before(endOfToday)
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func groupEventsByDay(events []attendance.PunchEvent) map[string][]attendance.PunchEvent {
	grouped := make(map[string][]attendance.PunchEvent)
	for _, event := range events {
		key := dayKey(event.PunchTime)
		grouped[key] = append(grouped[key], event)
	}
	return grouped
}

func formatMinutes(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
