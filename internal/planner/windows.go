package planner

import (
	"strings"
	"time"

	"github.com/MolchanovArt/exocortex/internal/models"
	"github.com/MolchanovArt/exocortex/internal/utils"
)

// DayWindow is a single day's candidate work window: the date (midnight in
// the planning timezone) plus the daily start and end clock times.
type DayWindow struct {
	Date  time.Time
	Start utils.Clock
	End   utils.Clock
}

// Range resolves the window to an absolute time range on its date.
func (w DayWindow) Range() TimeRange {
	return TimeRange{Start: w.Start.On(w.Date), End: w.End.On(w.Date)}
}

// workDaySet converts configured day names into a weekday set. Names are
// matched case-insensitively on their first three letters; unrecognized
// names are silently ignored.
func workDaySet(workDays []string) map[time.Weekday]bool {
	dayMap := map[string]time.Weekday{
		"mon": time.Monday,
		"tue": time.Tuesday,
		"wed": time.Wednesday,
		"thu": time.Thursday,
		"fri": time.Friday,
		"sat": time.Saturday,
		"sun": time.Sunday,
	}

	set := make(map[time.Weekday]bool, len(workDays))
	for _, day := range workDays {
		key := strings.ToLower(day)
		if len(key) > 3 {
			key = key[:3]
		}
		if wd, ok := dayMap[key]; ok {
			set[wd] = true
		}
	}
	return set
}

// buildWorkWindows expands the date range into per-day work windows for
// each day offset 0..daysAhead inclusive whose weekday is in the
// configured work-day set. startDay must be midnight in the planning
// timezone.
func buildWorkWindows(startDay time.Time, daysAhead int, prefs models.PlanningPreferences) ([]DayWindow, error) {
	workStart, err := utils.ParseClock(prefs.WorkHours.Start)
	if err != nil {
		return nil, err
	}
	workEnd, err := utils.ParseClock(prefs.WorkHours.End)
	if err != nil {
		return nil, err
	}

	days := workDaySet(prefs.WorkDays)

	var windows []DayWindow
	for i := 0; i <= daysAhead; i++ {
		date := startDay.AddDate(0, 0, i)
		if days[date.Weekday()] {
			windows = append(windows, DayWindow{Date: date, Start: workStart, End: workEnd})
		}
	}
	return windows, nil
}
