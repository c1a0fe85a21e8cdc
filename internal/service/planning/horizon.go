package planning

import (
	"time"
)

const dateLayout = "2006-01-02"

// horizon is the span of week-aligned dates a run may schedule into. Each
// week holds seven consecutive dates starting on a Monday.
type horizon struct {
	weeks [][]string
}

func buildHorizon(weekStart time.Time, weekCount int) horizon {
	if weekCount < 1 {
		weekCount = 1
	}

	h := horizon{weeks: make([][]string, 0, weekCount)}
	for w := 0; w < weekCount; w++ {
		days := make([]string, 0, 7)
		for d := 0; d < 7; d++ {
			days = append(days, weekStart.AddDate(0, 0, w*7+d).Format(dateLayout))
		}
		h.weeks = append(h.weeks, days)
	}

	return h
}

func (h horizon) allDates() []string {
	var dates []string
	for _, week := range h.weeks {
		dates = append(dates, week...)
	}
	return dates
}

func (h horizon) firstDate() string {
	return h.weeks[0][0]
}

func (h horizon) lastDate() string {
	last := h.weeks[len(h.weeks)-1]
	return last[len(last)-1]
}

// weekIndexForISOWeek maps an ISO week number onto the horizon, or -1 when
// that week is not covered. Subscription orders use this to keep their
// original week cadence across replans.
func (h horizon) weekIndexForISOWeek(isoWeek int) int {
	for i, week := range h.weeks {
		d, err := time.Parse(dateLayout, week[0])
		if err != nil {
			continue
		}
		_, wk := d.ISOWeek()
		if wk == isoWeek {
			return i
		}
	}
	return -1
}

// weekIndexForDate maps a date onto its horizon week, or -1 when outside.
func (h horizon) weekIndexForDate(date string) int {
	for i, week := range h.weeks {
		for _, d := range week {
			if d == date {
				return i
			}
		}
	}
	return -1
}

// currentMonday returns the Monday of the week the given day falls in. The
// default horizon starts here so a run can still fill the remainder of the
// current ISO week.
func currentMonday(now time.Time) time.Time {
	d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// upcomingMonday returns the next Monday strictly after the given day.
func upcomingMonday(now time.Time) time.Time {
	d := now
	for {
		d = d.AddDate(0, 0, 1)
		if d.Weekday() == time.Monday {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		}
	}
}
