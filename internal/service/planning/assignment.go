package planning

import (
	"sort"

	"github.com/fensterhq/fieldservice-backend-go/internal/config"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/employee"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/order"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/planning"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/geo"
)

// assignmentResult groups draft assignments per employee-day, ready for
// sequencing.
type assignmentResult struct {
	buckets map[dayKey][]order.Order
	skipped []planning.SkippedOrder
}

// assignOrders picks an employee and a date for every plannable order.
// Orders are processed most important first; each lands with the eligible
// employee carrying the lightest weighted load, on the emptiest day of the
// target week. Subscription orders keep their original week cadence when
// the horizon covers it.
func assignOrders(cfg config.PlanningConfig, orders []order.Order, employees []employee.Employee, ledger *capacityLedger, h horizon) assignmentResult {
	result := assignmentResult{buckets: make(map[dayKey][]order.Order)}

	sorted := make([]order.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		wi, wj := sorted[i].Priority.Weight(), sorted[j].Priority.Weight()
		if wi != wj {
			return wi > wj
		}
		di := sorted[i].RevenueDensity(cfg.DefaultDurationMinutes)
		dj := sorted[j].RevenueDensity(cfg.DefaultDurationMinutes)
		if di != dj {
			return di > dj
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	for _, o := range sorted {
		var eligible []employee.Employee
		for _, emp := range employees {
			if isEligible(&emp, &o, cfg.DefaultWorkRadiusKm) {
				eligible = append(eligible, emp)
			}
		}
		if len(eligible) == 0 {
			result.skipped = append(result.skipped, planning.SkippedOrder{
				OrderID: o.ID,
				Reason:  skipReasonNoEmployee,
			})
			continue
		}

		duration := o.DurationMinutes(cfg.DefaultDurationMinutes)
		startWeek := targetWeek(&o, h)

		key, ok := pickSlot(cfg, &o, eligible, ledger, h, startWeek, duration)
		if !ok {
			result.skipped = append(result.skipped, planning.SkippedOrder{
				OrderID: o.ID,
				Reason:  skipReasonNoCapacity,
			})
			continue
		}

		ledger.commit(key.employeeID, key.date, duration)
		result.buckets[key] = append(result.buckets[key], o)
	}

	return result
}

// nextOpenDay finds the first horizon date after the given key where the
// employee can still take the order, committing the minutes when found.
func nextOpenDay(ledger *capacityLedger, h horizon, after dayKey, duration int) (dayKey, bool) {
	for _, date := range h.allDates() {
		if date <= after.date {
			continue
		}
		if ledger.commit(after.employeeID, date, duration) {
			return dayKey{after.employeeID, date}, true
		}
	}
	return dayKey{}, false
}

// insertDayKey keeps the processing queue sorted when an overflowing stop
// opens a new employee-day later in the horizon.
func insertDayKey(keys []dayKey, after int, key dayKey) []dayKey {
	for i := after + 1; i < len(keys); i++ {
		if keys[i] == key {
			return keys
		}
	}

	pos := len(keys)
	for i := after + 1; i < len(keys); i++ {
		if keys[i].date > key.date ||
			(keys[i].date == key.date && keys[i].employeeID > key.employeeID) {
			pos = i
			break
		}
	}
	keys = append(keys, dayKey{})
	copy(keys[pos+1:], keys[pos:])
	keys[pos] = key
	return keys
}

// targetWeek resolves which horizon week the order should land in.
func targetWeek(o *order.Order, h horizon) int {
	if o.IsSubscriptionOrder() && o.ScheduledWeek != nil {
		if idx := h.weekIndexForISOWeek(*o.ScheduledWeek); idx >= 0 {
			return idx
		}
	}
	if o.ScheduledDate != nil && *o.ScheduledDate != "" {
		if idx := h.weekIndexForDate(*o.ScheduledDate); idx >= 0 {
			return idx
		}
	}
	return 0
}

// pickSlot finds the best employee-day for the order, scanning weeks from
// the target forward. The employee score blends the minutes already
// committed in the candidate week with the distance from home to the job
// site; lower is better. Minutes dominate, so workload evens out before
// distance gets a say.
func pickSlot(cfg config.PlanningConfig, o *order.Order, eligible []employee.Employee, ledger *capacityLedger, h horizon, startWeek, duration int) (dayKey, bool) {
	site, hasSite := o.Coordinates()

	for w := startWeek; w < len(h.weeks); w++ {
		best := dayKey{}
		bestScore := 0.0
		bestDayLoad := 0
		found := false

		for _, emp := range eligible {
			homeDistKm := 0.0
			if home, ok := emp.HomePoint(); ok && hasSite {
				homeDistKm = geo.DistanceKm(home, site)
			}
			weekMinutes := float64(ledger.committedInDates(emp.ID, h.weeks[w]))
			score := cfg.LoadWeight*weekMinutes + cfg.DistanceWeight*homeDistKm

			for _, date := range h.weeks[w] {
				if ledger.remaining(emp.ID, date) < duration {
					continue
				}
				dayLoad := ledger.committedInDates(emp.ID, []string{date})
				candidate := dayKey{emp.ID, date}

				if !found ||
					score < bestScore ||
					(score == bestScore && dayLoad < bestDayLoad) ||
					(score == bestScore && dayLoad == bestDayLoad && date < best.date) {
					best = candidate
					bestScore = score
					bestDayLoad = dayLoad
					found = true
				}
			}
		}

		if found {
			return best, true
		}
	}

	return dayKey{}, false
}
