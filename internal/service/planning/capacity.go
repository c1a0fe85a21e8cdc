package planning

import (
	"log/slog"
	"time"

	"github.com/fensterhq/fieldservice-backend-go/internal/config"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/employee"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/order"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/schedule"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/validator"
)

type dayKey struct {
	employeeID string
	date       string
}

// dayWindow is one employee's working window on one date, in minutes from
// midnight.
type dayWindow struct {
	startMin  int
	endMin    int
	available int
}

// capacityLedger tracks how many work minutes remain per employee per date
// across the planning horizon. Every commitment, pre-existing or made
// during the run, is charged against it.
type capacityLedger struct {
	windows   map[dayKey]dayWindow
	committed map[dayKey]int
}

// newCapacityLedger opens a window per employee per horizon date. Dates
// before notBefore stay closed so a mid-week run cannot schedule into the
// already worked part of the current week.
func newCapacityLedger(cfg config.PlanningConfig, employees []employee.Employee, schedules map[string][]schedule.WorkSchedule, h horizon, notBefore string) *capacityLedger {
	ledger := &capacityLedger{
		windows:   make(map[dayKey]dayWindow),
		committed: make(map[dayKey]int),
	}

	defaultStart := validator.ClockToMinutes(cfg.DefaultDayStart)
	defaultEnd := validator.ClockToMinutes(cfg.DefaultDayEnd)

	for _, emp := range employees {
		byDay := make(map[int]schedule.WorkSchedule)
		for _, s := range schedules[emp.ID] {
			byDay[s.DayOfWeek] = s
		}
		if len(byDay) == 0 {
			slog.Debug("employee has no work schedule, assuming default working week",
				"employee_id", emp.ID)
		}

		maxPerDay := emp.MaxHoursPerDay * 60
		if maxPerDay <= 0 {
			maxPerDay = 8 * 60
		}

		for _, date := range h.allDates() {
			if notBefore != "" && date < notBefore {
				continue
			}
			d, err := time.Parse(dateLayout, date)
			if err != nil {
				continue
			}
			dow := int(d.Weekday())
			if dow == 0 {
				dow = 7
			}

			var start, end int
			if s, ok := byDay[dow]; ok {
				if !s.IsWorkingDay {
					continue
				}
				start = validator.ClockToMinutes(s.StartTime)
				end = validator.ClockToMinutes(s.EndTime)
			} else if dow >= 1 && dow <= 5 {
				// Weekday without a schedule row: default working window.
				start, end = defaultStart, defaultEnd
			} else {
				continue
			}

			if start < 0 || end <= start {
				continue
			}

			available := end - start
			if available > maxPerDay {
				available = maxPerDay
			}

			ledger.windows[dayKey{emp.ID, date}] = dayWindow{
				startMin:  start,
				endMin:    end,
				available: available,
			}
		}
	}

	return ledger
}

// seedExisting charges orders that already hold a date and employee against
// the ledger so new assignments cannot overbook those days.
func (l *capacityLedger) seedExisting(existing []order.Order, defaultDuration int) {
	for _, o := range existing {
		if o.AssignedEmployeeID == nil || o.ScheduledDate == nil {
			continue
		}
		key := dayKey{*o.AssignedEmployeeID, *o.ScheduledDate}
		if _, ok := l.windows[key]; !ok {
			continue
		}
		l.committed[key] += o.DurationMinutes(defaultDuration)
	}
}

func (l *capacityLedger) window(employeeID, date string) (dayWindow, bool) {
	w, ok := l.windows[dayKey{employeeID, date}]
	return w, ok
}

func (l *capacityLedger) remaining(employeeID, date string) int {
	key := dayKey{employeeID, date}
	w, ok := l.windows[key]
	if !ok {
		return 0
	}
	rem := w.available - l.committed[key]
	if rem < 0 {
		return 0
	}
	return rem
}

// commit reserves minutes on the given day. It refuses to overbook.
func (l *capacityLedger) commit(employeeID, date string, minutes int) bool {
	if l.remaining(employeeID, date) < minutes {
		return false
	}
	l.committed[dayKey{employeeID, date}] += minutes
	return true
}

// release hands minutes back, used when a stop bounces out of its day
// window and has to move on.
func (l *capacityLedger) release(employeeID, date string, minutes int) {
	key := dayKey{employeeID, date}
	l.committed[key] -= minutes
	if l.committed[key] < 0 {
		l.committed[key] = 0
	}
}

// committedInDates sums an employee's committed minutes across the given
// dates, used to balance load when choosing an assignee.
func (l *capacityLedger) committedInDates(employeeID string, dates []string) int {
	total := 0
	for _, date := range dates {
		total += l.committed[dayKey{employeeID, date}]
	}
	return total
}
