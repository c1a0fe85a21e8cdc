package planning

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fensterhq/fieldservice-backend-go/internal/config"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/employee"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/order"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/schedule"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/geo"
)

func testPlanningConfig() config.PlanningConfig {
	return config.PlanningConfig{
		LoadWeight:             0.7,
		DistanceWeight:         0.3,
		DistancePenaltyPerKm:   0.1,
		DistancePenaltyCapKm:   2.0,
		TravelMinutesPerKm:     2.5,
		DefaultWorkRadiusKm:    100,
		DefaultDayStart:        "08:00",
		DefaultDayEnd:          "16:00",
		DefaultDurationMinutes: 60,
		BaseScore:              60,
		MaxScore:               100,
	}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }

// testEmployee is based near Aarhus.
func testEmployee(id string) employee.Employee {
	return employee.Employee{
		ID:             id,
		UserID:         "user-1",
		Name:           "Jens Hansen",
		HomeLatitude:   floatPtr(56.0),
		HomeLongitude:  floatPtr(10.0),
		MaxHoursPerDay: 8,
		IsActive:       true,
	}
}

// testOrder places the job roughly kmNorth kilometres north of (56, 10).
func testOrder(id string, kmNorth float64) order.Order {
	lat := 56.0 + kmNorth*0.008994
	return order.Order{
		ID:                id,
		UserID:            "user-1",
		CustomerName:      "Kunde " + id,
		Address:           "Testvej 1, Aarhus",
		Latitude:          &lat,
		Longitude:         floatPtr(10.0),
		Priority:          order.PriorityNormal,
		Status:            order.StatusPending,
		EstimatedDuration: 60,
		CreatedAt:         time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestBuildHorizon(t *testing.T) {
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	h := buildHorizon(monday, 2)

	require.Len(t, h.weeks, 2)
	require.Len(t, h.weeks[0], 7)
	assert.Equal(t, "2026-09-07", h.firstDate())
	assert.Equal(t, "2026-09-20", h.lastDate())
	assert.Equal(t, 0, h.weekIndexForDate("2026-09-09"))
	assert.Equal(t, 1, h.weekIndexForDate("2026-09-15"))
	assert.Equal(t, -1, h.weekIndexForDate("2026-10-01"))
}

func TestHorizonWeekIndexForISOWeek(t *testing.T) {
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	_, isoWeek := monday.ISOWeek()
	h := buildHorizon(monday, 3)

	assert.Equal(t, 0, h.weekIndexForISOWeek(isoWeek))
	assert.Equal(t, 2, h.weekIndexForISOWeek(isoWeek+2))
	assert.Equal(t, -1, h.weekIndexForISOWeek(isoWeek+5))
}

func TestUpcomingMondaySkipsCurrentWeek(t *testing.T) {
	wednesday := time.Date(2026, 9, 2, 14, 30, 0, 0, time.UTC)
	monday := upcomingMonday(wednesday)
	assert.Equal(t, time.Monday, monday.Weekday())
	assert.Equal(t, "2026-09-07", monday.Format(dateLayout))

	// Starting on a Monday still moves to the next week.
	next := upcomingMonday(monday)
	assert.Equal(t, "2026-09-14", next.Format(dateLayout))
}

// The default horizon anchors on the week already in progress, so work can
// still land on its remaining days.
func TestCurrentMondayStaysInWeek(t *testing.T) {
	wednesday := time.Date(2026, 9, 2, 14, 30, 0, 0, time.UTC)
	monday := currentMonday(wednesday)
	assert.Equal(t, "2026-08-31", monday.Format(dateLayout))

	// A Monday maps to itself.
	assert.Equal(t, "2026-08-31", currentMonday(monday).Format(dateLayout))

	sunday := time.Date(2026, 9, 6, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-08-31", currentMonday(sunday).Format(dateLayout))
}

func TestCapacityLedgerDefaultWorkingWeek(t *testing.T) {
	cfg := testPlanningConfig()
	emp := testEmployee("emp-1")
	h := buildHorizon(time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), 1)

	ledger := newCapacityLedger(cfg, []employee.Employee{emp}, nil, h, "")

	// Monday through Friday get the default eight hour window.
	assert.Equal(t, 480, ledger.remaining("emp-1", "2026-09-07"))
	assert.Equal(t, 480, ledger.remaining("emp-1", "2026-09-11"))
	// Weekend stays closed.
	assert.Equal(t, 0, ledger.remaining("emp-1", "2026-09-12"))
	assert.Equal(t, 0, ledger.remaining("emp-1", "2026-09-13"))
}

func TestCapacityLedgerHonorsWorkSchedule(t *testing.T) {
	cfg := testPlanningConfig()
	emp := testEmployee("emp-1")
	h := buildHorizon(time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), 1)

	schedules := map[string][]schedule.WorkSchedule{
		"emp-1": {
			{EmployeeID: "emp-1", DayOfWeek: 1, StartTime: "07:00", EndTime: "13:00", IsWorkingDay: true},
			{EmployeeID: "emp-1", DayOfWeek: 2, StartTime: "08:00", EndTime: "16:00", IsWorkingDay: false},
		},
	}

	ledger := newCapacityLedger(cfg, []employee.Employee{emp}, schedules, h, "")

	// Monday: explicit six hour window.
	assert.Equal(t, 360, ledger.remaining("emp-1", "2026-09-07"))
	// Tuesday is marked off.
	assert.Equal(t, 0, ledger.remaining("emp-1", "2026-09-08"))
	// Wednesday has no row, so the default weekday window fills the gap.
	assert.Equal(t, 480, ledger.remaining("emp-1", "2026-09-09"))
	// The weekend needs an explicit row to open.
	assert.Equal(t, 0, ledger.remaining("emp-1", "2026-09-12"))
}

// A run started mid-week must not schedule into days already worked.
func TestCapacityLedgerClosesPastDates(t *testing.T) {
	cfg := testPlanningConfig()
	emp := testEmployee("emp-1")
	h := buildHorizon(time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), 1)

	ledger := newCapacityLedger(cfg, []employee.Employee{emp}, nil, h, "2026-09-09")

	assert.Equal(t, 0, ledger.remaining("emp-1", "2026-09-07"))
	assert.Equal(t, 0, ledger.remaining("emp-1", "2026-09-08"))
	assert.Equal(t, 480, ledger.remaining("emp-1", "2026-09-09"))
	assert.Equal(t, 480, ledger.remaining("emp-1", "2026-09-11"))
}

func TestCapacityLedgerMaxHoursCap(t *testing.T) {
	cfg := testPlanningConfig()
	emp := testEmployee("emp-1")
	emp.MaxHoursPerDay = 4
	h := buildHorizon(time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), 1)

	ledger := newCapacityLedger(cfg, []employee.Employee{emp}, nil, h, "")
	assert.Equal(t, 240, ledger.remaining("emp-1", "2026-09-07"))
}

func TestCapacityLedgerCommitRefusesOverbooking(t *testing.T) {
	cfg := testPlanningConfig()
	emp := testEmployee("emp-1")
	h := buildHorizon(time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), 1)
	ledger := newCapacityLedger(cfg, []employee.Employee{emp}, nil, h, "")

	assert.True(t, ledger.commit("emp-1", "2026-09-07", 450))
	assert.Equal(t, 30, ledger.remaining("emp-1", "2026-09-07"))
	assert.False(t, ledger.commit("emp-1", "2026-09-07", 60))
	assert.True(t, ledger.commit("emp-1", "2026-09-07", 30))
	assert.Equal(t, 0, ledger.remaining("emp-1", "2026-09-07"))
}

func TestCapacityLedgerReleaseRestoresMinutes(t *testing.T) {
	cfg := testPlanningConfig()
	emp := testEmployee("emp-1")
	h := buildHorizon(time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), 1)
	ledger := newCapacityLedger(cfg, []employee.Employee{emp}, nil, h, "")

	require.True(t, ledger.commit("emp-1", "2026-09-07", 480))
	assert.Equal(t, 0, ledger.remaining("emp-1", "2026-09-07"))

	ledger.release("emp-1", "2026-09-07", 60)
	assert.Equal(t, 60, ledger.remaining("emp-1", "2026-09-07"))

	// Releasing more than was committed does not go negative.
	ledger.release("emp-1", "2026-09-07", 9999)
	assert.Equal(t, 480, ledger.remaining("emp-1", "2026-09-07"))
}

func TestCapacityLedgerSeedExisting(t *testing.T) {
	cfg := testPlanningConfig()
	emp := testEmployee("emp-1")
	h := buildHorizon(time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), 1)
	ledger := newCapacityLedger(cfg, []employee.Employee{emp}, nil, h, "")

	existing := testOrder("o-1", 1)
	existing.AssignedEmployeeID = strPtr("emp-1")
	existing.ScheduledDate = strPtr("2026-09-07")
	existing.EstimatedDuration = 120

	ledger.seedExisting([]order.Order{existing}, cfg.DefaultDurationMinutes)
	assert.Equal(t, 360, ledger.remaining("emp-1", "2026-09-07"))
}

func TestPartitionOrdersProtection(t *testing.T) {
	plain := testOrder("plain", 1)

	edited := testOrder("edited", 1)
	edited.ManuallyEdited = true

	complete := testOrder("complete", 1)
	complete.Status = order.StatusScheduled
	complete.AssignedEmployeeID = strPtr("emp-1")
	complete.ScheduledDate = strPtr("2026-09-07")
	complete.ScheduledTime = strPtr("09:00")

	done := testOrder("done", 1)
	done.Status = order.StatusCompleted

	orders := []order.Order{plain, edited, complete, done}

	p := partitionOrders(orders, nil, false)
	require.Len(t, p.plannable, 1)
	assert.Equal(t, "plain", p.plannable[0].ID)
	assert.Len(t, p.protected, 2)
	assert.Len(t, p.skipped, 3)
}

func TestPartitionOrdersForceUnlocksCompleteSchedules(t *testing.T) {
	complete := testOrder("complete", 1)
	complete.Status = order.StatusScheduled
	complete.AssignedEmployeeID = strPtr("emp-1")
	complete.ScheduledDate = strPtr("2026-09-07")
	complete.ScheduledTime = strPtr("09:00")

	p := partitionOrders([]order.Order{complete}, nil, true)
	require.Len(t, p.plannable, 1)
	assert.Empty(t, p.protected)
}

func TestPartitionOrdersManualEditNeedsForceAndTargeting(t *testing.T) {
	edited := testOrder("edited", 1)
	edited.ManuallyEdited = true

	// Force alone is not enough.
	p := partitionOrders([]order.Order{edited}, nil, true)
	assert.Empty(t, p.plannable)
	require.Len(t, p.protected, 1)

	// Targeting alone is not enough either.
	p = partitionOrders([]order.Order{edited}, map[string]bool{"edited": true}, false)
	assert.Empty(t, p.plannable)

	// Both together unlock the order.
	p = partitionOrders([]order.Order{edited}, map[string]bool{"edited": true}, true)
	require.Len(t, p.plannable, 1)
	assert.Equal(t, "edited", p.plannable[0].ID)
}

func TestIsEligibleSpecialty(t *testing.T) {
	emp := testEmployee("emp-1")
	emp.Specialties = []string{"vinduespudsning"}

	o := testOrder("o-1", 1)
	o.ServiceType = "vinduespudsning"
	assert.True(t, isEligible(&emp, &o, 100))

	o.ServiceType = "havearbejde"
	assert.False(t, isEligible(&emp, &o, 100))

	// No specialties recorded means generalist.
	emp.Specialties = nil
	assert.True(t, isEligible(&emp, &o, 100))
}

func TestIsEligibleWorkRadius(t *testing.T) {
	emp := testEmployee("emp-1")
	emp.WorkRadiusKm = floatPtr(10)

	near := testOrder("near", 5)
	assert.True(t, isEligible(&emp, &near, 100))

	far := testOrder("far", 50)
	assert.False(t, isEligible(&emp, &far, 100))
}

func TestIsEligiblePreferredAreaOverridesRadius(t *testing.T) {
	emp := testEmployee("emp-1")
	emp.WorkRadiusKm = floatPtr(10)
	emp.PreferredAreas = []string{"Aalborg"}

	far := testOrder("far", 150)
	far.Address = "Boulevarden 3, Aalborg"
	assert.True(t, isEligible(&emp, &far, 100))
}

func TestIsEligibleMissingCoordinates(t *testing.T) {
	emp := testEmployee("emp-1")
	emp.WorkRadiusKm = floatPtr(10)

	// An unresolved job can go to anyone without declared areas.
	o := testOrder("o-1", 50)
	o.Latitude = nil
	o.Longitude = nil
	assert.True(t, isEligible(&emp, &o, 100))

	// With declared areas and no way to check the radius, the areas are
	// the filter.
	emp.PreferredAreas = []string{"Aalborg"}
	assert.False(t, isEligible(&emp, &o, 100))

	o.Address = "Boulevarden 3, Aalborg"
	assert.True(t, isEligible(&emp, &o, 100))
}

func TestIsEligibleInactiveEmployee(t *testing.T) {
	emp := testEmployee("emp-1")
	emp.IsActive = false
	o := testOrder("o-1", 1)
	assert.False(t, isEligible(&emp, &o, 100))
}

func TestAssignOrdersBalancesLoad(t *testing.T) {
	cfg := testPlanningConfig()
	empA := testEmployee("emp-a")
	empB := testEmployee("emp-b")
	h := buildHorizon(time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), 1)
	ledger := newCapacityLedger(cfg, []employee.Employee{empA, empB}, nil, h, "")

	orders := []order.Order{
		testOrder("o-1", 1),
		testOrder("o-2", 2),
		testOrder("o-3", 3),
		testOrder("o-4", 4),
	}

	result := assignOrders(cfg, orders, []employee.Employee{empA, empB}, ledger, h)
	assert.Empty(t, result.skipped)

	perEmployee := map[string]int{}
	total := 0
	for key, bucket := range result.buckets {
		perEmployee[key.employeeID] += len(bucket)
		total += len(bucket)
	}
	assert.Equal(t, 4, total)
	assert.Equal(t, 2, perEmployee["emp-a"])
	assert.Equal(t, 2, perEmployee["emp-b"])
}

// Committed minutes dominate the assignment score, so a distant employee
// still shares the work instead of watching a nearby colleague saturate.
func TestAssignOrdersLoadOutweighsDistance(t *testing.T) {
	cfg := testPlanningConfig()
	near := testEmployee("emp-near")
	far := testEmployee("emp-far")
	far.HomeLatitude = floatPtr(56.0 + 60*0.008994) // ~60 km out

	h := buildHorizon(time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), 1)
	ledger := newCapacityLedger(cfg, []employee.Employee{near, far}, nil, h, "")

	// Eight full-day jobs next to the near employee's home.
	var orders []order.Order
	for i := 0; i < 8; i++ {
		o := testOrder(fmt.Sprintf("o-%d", i), 1)
		o.EstimatedDuration = 480
		orders = append(orders, o)
	}

	result := assignOrders(cfg, orders, []employee.Employee{near, far}, ledger, h)
	assert.Empty(t, result.skipped)

	perEmployee := map[string]int{}
	for key, bucket := range result.buckets {
		perEmployee[key.employeeID] += len(bucket)
	}
	assert.Equal(t, 4, perEmployee["emp-near"])
	assert.Equal(t, 4, perEmployee["emp-far"])
}

func TestNextOpenDayCommitsLaterSlot(t *testing.T) {
	cfg := testPlanningConfig()
	emp := testEmployee("emp-1")
	h := buildHorizon(time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), 1)
	ledger := newCapacityLedger(cfg, []employee.Employee{emp}, nil, h, "")

	// Monday and Tuesday are full; the slot lands on Wednesday.
	require.True(t, ledger.commit("emp-1", "2026-09-07", 480))
	require.True(t, ledger.commit("emp-1", "2026-09-08", 480))

	key, ok := nextOpenDay(ledger, h, dayKey{"emp-1", "2026-09-07"}, 60)
	require.True(t, ok)
	assert.Equal(t, "2026-09-09", key.date)
	assert.Equal(t, 420, ledger.remaining("emp-1", "2026-09-09"))

	// A fully booked horizon has no later day to offer.
	for _, date := range h.allDates() {
		ledger.commit("emp-1", date, ledger.remaining("emp-1", date))
	}
	_, ok = nextOpenDay(ledger, h, dayKey{"emp-1", "2026-09-07"}, 60)
	assert.False(t, ok)
}

func TestInsertDayKeyKeepsQueueSorted(t *testing.T) {
	keys := []dayKey{
		{"emp-1", "2026-09-07"},
		{"emp-2", "2026-09-07"},
		{"emp-1", "2026-09-10"},
	}

	keys = insertDayKey(keys, 0, dayKey{"emp-1", "2026-09-09"})
	require.Len(t, keys, 4)
	assert.Equal(t, dayKey{"emp-1", "2026-09-09"}, keys[2])

	// Re-inserting an existing key is a no-op.
	keys = insertDayKey(keys, 0, dayKey{"emp-1", "2026-09-10"})
	assert.Len(t, keys, 4)

	// A date later than anything queued goes to the end.
	keys = insertDayKey(keys, 1, dayKey{"emp-2", "2026-09-11"})
	assert.Equal(t, dayKey{"emp-2", "2026-09-11"}, keys[4])
}

func TestAssignOrdersRespectsCapacity(t *testing.T) {
	cfg := testPlanningConfig()
	emp := testEmployee("emp-1")
	emp.MaxHoursPerDay = 1
	h := buildHorizon(time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), 1)
	ledger := newCapacityLedger(cfg, []employee.Employee{emp}, nil, h, "")

	// Six orders of an hour each: five weekdays hold five of them.
	var orders []order.Order
	for _, id := range []string{"o-1", "o-2", "o-3", "o-4", "o-5", "o-6"} {
		orders = append(orders, testOrder(id, 1))
	}

	result := assignOrders(cfg, orders, []employee.Employee{emp}, ledger, h)

	placed := 0
	for _, bucket := range result.buckets {
		placed += len(bucket)
	}
	assert.Equal(t, 5, placed)
	require.Len(t, result.skipped, 1)
	assert.Equal(t, skipReasonNoCapacity, result.skipped[0].Reason)
}

func TestAssignOrdersNoEligibleEmployee(t *testing.T) {
	cfg := testPlanningConfig()
	emp := testEmployee("emp-1")
	emp.Specialties = []string{"vinduespudsning"}
	h := buildHorizon(time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), 1)
	ledger := newCapacityLedger(cfg, []employee.Employee{emp}, nil, h, "")

	o := testOrder("o-1", 1)
	o.ServiceType = "kloakarbejde"

	result := assignOrders(cfg, []order.Order{o}, []employee.Employee{emp}, ledger, h)
	assert.Empty(t, result.buckets)
	require.Len(t, result.skipped, 1)
	assert.Equal(t, skipReasonNoEmployee, result.skipped[0].Reason)
}

func TestAssignOrdersKeepsSubscriptionCadence(t *testing.T) {
	cfg := testPlanningConfig()
	emp := testEmployee("emp-1")
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	h := buildHorizon(monday, 3)
	ledger := newCapacityLedger(cfg, []employee.Employee{emp}, nil, h, "")

	_, isoWeek := monday.AddDate(0, 0, 14).ISOWeek()
	sub := testOrder("sub-1", 1)
	sub.SubscriptionID = strPtr("s-1")
	sub.ScheduledWeek = intPtr(isoWeek)

	result := assignOrders(cfg, []order.Order{sub}, []employee.Employee{emp}, ledger, h)
	require.Len(t, result.buckets, 1)
	for key := range result.buckets {
		assert.Equal(t, 2, h.weekIndexForDate(key.date), "subscription order should land in its cadence week")
	}
}

func TestAssignOrdersPrioritizesUrgentWork(t *testing.T) {
	cfg := testPlanningConfig()
	emp := testEmployee("emp-1")
	emp.MaxHoursPerDay = 1
	h := buildHorizon(time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), 1)
	ledger := newCapacityLedger(cfg, []employee.Employee{emp}, nil, h, "")

	// Six candidates but only five slots; the low priority order loses out.
	var orders []order.Order
	for _, id := range []string{"n-1", "n-2", "n-3", "n-4", "n-5"} {
		orders = append(orders, testOrder(id, 1))
	}
	low := testOrder("low", 1)
	low.Priority = order.PriorityLow
	orders = append(orders, low)

	result := assignOrders(cfg, orders, []employee.Employee{emp}, ledger, h)
	require.Len(t, result.skipped, 1)
	assert.Equal(t, "low", result.skipped[0].OrderID)
}

func TestSequenceDayVisitsNearJobsFirst(t *testing.T) {
	cfg := testPlanningConfig()
	home := geo.Point{Latitude: 56.0, Longitude: 10.0}

	far := testOrder("far", 50)
	mid := testOrder("mid", 3)
	near := testOrder("near", 1)

	stops := sequenceDay(cfg, home, true, []order.Order{far, mid, near})
	require.Len(t, stops, 3)
	assert.Equal(t, "near", stops[0].order.ID)
	assert.Equal(t, "mid", stops[1].order.ID)
	assert.Equal(t, "far", stops[2].order.ID)
	assert.InDelta(t, 1.0, stops[0].legKm, 0.1)
	assert.InDelta(t, 2.0, stops[1].legKm, 0.1)
}

func TestSequenceDayCriticalBeatsDistance(t *testing.T) {
	cfg := testPlanningConfig()
	home := geo.Point{Latitude: 56.0, Longitude: 10.0}

	near := testOrder("near", 1)
	farCritical := testOrder("critical", 80)
	farCritical.Priority = order.PriorityCritical

	// The distance penalty is capped at 2.0, so critical (4 - 2.0) still
	// outranks normal next door (2 - 0.1).
	stops := sequenceDay(cfg, home, true, []order.Order{near, farCritical})
	require.Len(t, stops, 2)
	assert.Equal(t, "critical", stops[0].order.ID)
}

// Route distance covers the whole loop: out from home, between the stops
// and back home again.
func TestRouteDistanceIncludesReturnLeg(t *testing.T) {
	cfg := testPlanningConfig()
	home := geo.Point{Latitude: 56.0, Longitude: 10.0}
	window := dayWindow{startMin: 480, endMin: 960, available: 480}

	stops := sequenceDay(cfg, home, true, []order.Order{
		testOrder("near", 1),
		testOrder("mid", 3),
	})
	timed, overflow := allocateTimeSlots(cfg, window, stops)
	require.Empty(t, overflow)

	// 1 km out, 2 km between, 3 km home.
	assert.InDelta(t, 6.0, routeDistanceKm(timed, home, true), 0.1)

	// Without home coordinates only the legs count.
	assert.InDelta(t, 3.0, routeDistanceKm(timed, home, false), 0.1)
}

func TestAllocateTimeSlotsInsertsTravelBuffers(t *testing.T) {
	cfg := testPlanningConfig()
	home := geo.Point{Latitude: 56.0, Longitude: 10.0}
	window := dayWindow{startMin: 480, endMin: 960, available: 480}

	stops := sequenceDay(cfg, home, true, []order.Order{
		testOrder("a", 1),
		testOrder("b", 3),
	})
	timed, overflow := allocateTimeSlots(cfg, window, stops)

	require.Empty(t, overflow)
	require.Len(t, timed, 2)
	// The first stop waits for the drive from home: one kilometre at
	// 2.5 min/km rounds to three minutes.
	assert.Equal(t, 483, timed[0].startMin)
	assert.Equal(t, "08:03", timed[0].clockOf())
	assert.Equal(t, 543, timed[0].endMin)

	// Two kilometres between the stops rounds to a five minute buffer.
	assert.Equal(t, 548, timed[1].startMin)
	assert.Equal(t, "09:08", timed[1].clockOf())
}

// A stop at the employee's own position starts exactly at the window open.
func TestAllocateTimeSlotsNoBufferAtZeroDistance(t *testing.T) {
	cfg := testPlanningConfig()
	home := geo.Point{Latitude: 56.0, Longitude: 10.0}
	window := dayWindow{startMin: 480, endMin: 960, available: 480}

	stops := sequenceDay(cfg, home, true, []order.Order{testOrder("a", 0)})
	timed, overflow := allocateTimeSlots(cfg, window, stops)

	require.Empty(t, overflow)
	require.Len(t, timed, 1)
	assert.Equal(t, "08:00", timed[0].clockOf())
}

func TestAllocateTimeSlotsStartTimesAreMonotonic(t *testing.T) {
	cfg := testPlanningConfig()
	home := geo.Point{Latitude: 56.0, Longitude: 10.0}
	window := dayWindow{startMin: 480, endMin: 960, available: 480}

	stops := sequenceDay(cfg, home, true, []order.Order{
		testOrder("a", 1), testOrder("b", 5), testOrder("c", 2), testOrder("d", 8),
	})
	timed, _ := allocateTimeSlots(cfg, window, stops)

	for i := 1; i < len(timed); i++ {
		assert.Greater(t, timed[i].startMin, timed[i-1].startMin,
			"stop %d must start after stop %d", i, i-1)
		assert.GreaterOrEqual(t, timed[i].startMin, timed[i-1].endMin,
			"stop %d must not overlap stop %d", i, i-1)
	}
}

func TestAllocateTimeSlotsOverflowsPastWindowEnd(t *testing.T) {
	cfg := testPlanningConfig()
	window := dayWindow{startMin: 480, endMin: 630, available: 150}

	o1 := testOrder("o-1", 1)
	o2 := testOrder("o-2", 1)
	o3 := testOrder("o-3", 1)
	stops := sequenceDay(cfg, geo.Point{Latitude: 56.0, Longitude: 10.0}, true, []order.Order{o1, o2, o3})

	timed, overflow := allocateTimeSlots(cfg, window, stops)
	assert.Len(t, timed, 2)
	assert.Len(t, overflow, 1)
}

func TestRouteScoreRewardsUrgentAndClustered(t *testing.T) {
	cfg := testPlanningConfig()

	critical := testOrder("c", 1)
	critical.Priority = order.PriorityCritical
	near := testOrder("n", 2)

	stops := sequenceDay(cfg, geo.Point{Latitude: 56.0, Longitude: 10.0}, true, []order.Order{critical, near})
	timed, _ := allocateTimeSlots(cfg, dayWindow{startMin: 480, endMin: 960, available: 480}, stops)

	// Base 60 + 4 for the critical stop in the first three + 2 for the
	// clustered consecutive pair.
	assert.Equal(t, 66, routeScore(cfg, timed))
}

func TestRouteScoreCapped(t *testing.T) {
	cfg := testPlanningConfig()
	cfg.BaseScore = 98

	critical := testOrder("c", 1)
	critical.Priority = order.PriorityCritical
	stops := sequenceDay(cfg, geo.Point{Latitude: 56.0, Longitude: 10.0}, true, []order.Order{critical})
	timed, _ := allocateTimeSlots(cfg, dayWindow{startMin: 480, endMin: 960, available: 480}, stops)

	assert.Equal(t, 100, routeScore(cfg, timed))
}

func TestRunScoreBalanceBonus(t *testing.T) {
	cfg := testPlanningConfig()

	balanced := runScore(cfg, []int{60, 60}, map[string]int{"a": 120, "b": 120})
	lopsided := runScore(cfg, []int{60, 60}, map[string]int{"a": 240, "b": 30})
	assert.Greater(t, balanced, lopsided)
	assert.Equal(t, 70, balanced)
}

func TestRunGuardSerializesPerUser(t *testing.T) {
	g := newRunGuard()

	require.True(t, g.acquire("user-1"))
	assert.False(t, g.acquire("user-1"))
	// Other users are unaffected.
	assert.True(t, g.acquire("user-2"))

	g.release("user-1")
	assert.True(t, g.acquire("user-1"))
}
