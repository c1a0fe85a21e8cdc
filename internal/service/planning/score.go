package planning

import (
	"math"

	"github.com/fensterhq/fieldservice-backend-go/internal/config"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/order"
)

const (
	clusterDistanceKm  = 5.0
	urgentStopBonus    = 4.0
	clusterPairBonus   = 2.0
	maxBalanceBonus    = 10.0
	urgentWindowStops  = 3
)

// routeScore rates one day's route. The base score is lifted when urgent
// work lands early in the day and when consecutive stops cluster together
// geographically.
func routeScore(cfg config.PlanningConfig, stops []timedStop) int {
	score := cfg.BaseScore

	for i, s := range stops {
		if i >= urgentWindowStops {
			break
		}
		if s.order.Priority == order.PriorityCritical || s.order.Priority == order.PriorityHigh {
			score += urgentStopBonus
		}
	}

	for i := 1; i < len(stops); i++ {
		if stops[i].hasPosition && stops[i].legKm <= clusterDistanceKm {
			score += clusterPairBonus
		}
	}

	if score > cfg.MaxScore {
		score = cfg.MaxScore
	}

	return int(math.Round(score))
}

// runScore aggregates route scores into the run-level efficiency figure. A
// balance bonus rewards spreading committed minutes evenly across
// employees.
func runScore(cfg config.PlanningConfig, routeScores []int, minutesByEmployee map[string]int) int {
	if len(routeScores) == 0 {
		return 0
	}

	sum := 0
	for _, s := range routeScores {
		sum += s
	}
	avg := float64(sum) / float64(len(routeScores))

	avg += balanceBonus(minutesByEmployee)
	if avg > cfg.MaxScore {
		avg = cfg.MaxScore
	}

	return int(math.Round(avg))
}

// balanceBonus returns up to maxBalanceBonus points, shrinking as the
// spread between the busiest and quietest employee grows.
func balanceBonus(minutesByEmployee map[string]int) float64 {
	if len(minutesByEmployee) < 2 {
		return maxBalanceBonus
	}

	min, max := math.MaxInt32, 0
	for _, m := range minutesByEmployee {
		if m < min {
			min = m
		}
		if m > max {
			max = m
		}
	}
	if max == 0 {
		return maxBalanceBonus
	}

	ratio := float64(min) / float64(max)
	return maxBalanceBonus * ratio
}
