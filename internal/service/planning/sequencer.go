package planning

import (
	"github.com/fensterhq/fieldservice-backend-go/internal/config"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/order"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/geo"
)

// sequencedStop is one visit in its final route position, with the travel
// distance from the previous position.
type sequencedStop struct {
	order        order.Order
	legKm        float64
	hasPosition  bool
	position     geo.Point
}

// sequenceDay orders a day's assignments greedily: from the current
// position, repeatedly take the stop with the best blend of priority,
// revenue density and nearness. The distance penalty is capped so a far
// critical job still beats a near low-priority one.
func sequenceDay(cfg config.PlanningConfig, home geo.Point, hasHome bool, orders []order.Order) []sequencedStop {
	remaining := make([]order.Order, len(orders))
	copy(remaining, orders)

	sequence := make([]sequencedStop, 0, len(remaining))
	current := home
	hasCurrent := hasHome

	for len(remaining) > 0 {
		bestIdx := 0
		bestValue := 0.0
		bestKm := 0.0

		for i, o := range remaining {
			legKm := 0.0
			if site, ok := o.Coordinates(); ok && hasCurrent {
				legKm = geo.DistanceKm(current, site)
			}

			penalty := cfg.DistancePenaltyPerKm * legKm
			if penalty > cfg.DistancePenaltyCapKm {
				penalty = cfg.DistancePenaltyCapKm
			}
			value := float64(o.Priority.Weight()) + o.RevenueDensity(cfg.DefaultDurationMinutes) - penalty

			if i == 0 || value > bestValue {
				bestIdx = i
				bestValue = value
				bestKm = legKm
			}
		}

		chosen := remaining[bestIdx]
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)

		stop := sequencedStop{order: chosen, legKm: bestKm}
		if site, ok := chosen.Coordinates(); ok {
			stop.hasPosition = true
			stop.position = site
			current = site
			hasCurrent = true
		}
		sequence = append(sequence, stop)
	}

	return sequence
}

// routeDistanceKm sums a day's travel legs plus the drive back home after
// the last positioned stop.
func routeDistanceKm(timed []timedStop, home geo.Point, hasHome bool) float64 {
	total := 0.0
	for _, t := range timed {
		total += t.legKm
	}
	if hasHome {
		for i := len(timed) - 1; i >= 0; i-- {
			if timed[i].hasPosition {
				total += geo.DistanceKm(timed[i].position, home)
				break
			}
		}
	}
	return total
}
