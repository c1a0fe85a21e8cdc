package planning

import (
	"strings"

	"github.com/fensterhq/fieldservice-backend-go/internal/domain/employee"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/order"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/planning"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/geo"
)

const (
	skipReasonClosed         = "order is completed or cancelled"
	skipReasonManuallyEdited = "order was manually edited and is protected"
	skipReasonProtected      = "order already has a complete schedule"
	skipReasonNoEmployee     = "no eligible employee"
	skipReasonNoCapacity     = "no remaining capacity in planning horizon"
	skipReasonNoTimeSlot     = "day window too short for remaining stops"
	skipReasonPersistFailed  = "route for the day could not be saved"
)

// partition splits candidate orders into those the engine may move and
// those it must leave untouched.
type partition struct {
	plannable []order.Order
	protected []order.Order
	skipped   []planning.SkippedOrder
}

// partitionOrders applies the protection rules. A manually edited order is
// only plannable when it was explicitly targeted and force was set; an
// order with a complete schedule is only plannable under force.
func partitionOrders(orders []order.Order, targeted map[string]bool, force bool) partition {
	var p partition

	for _, o := range orders {
		switch o.Status {
		case order.StatusCompleted, order.StatusCancelled, order.StatusInProgress:
			p.skipped = append(p.skipped, planning.SkippedOrder{
				OrderID: o.ID,
				Reason:  skipReasonClosed,
			})
			continue
		}

		if o.ManuallyEdited {
			if force && targeted[o.ID] {
				p.plannable = append(p.plannable, o)
			} else {
				p.protected = append(p.protected, o)
				p.skipped = append(p.skipped, planning.SkippedOrder{
					OrderID: o.ID,
					Reason:  skipReasonManuallyEdited,
				})
			}
			continue
		}

		if o.HasCompleteSchedule() && !force {
			p.protected = append(p.protected, o)
			p.skipped = append(p.skipped, planning.SkippedOrder{
				OrderID: o.ID,
				Reason:  skipReasonProtected,
			})
			continue
		}

		p.plannable = append(p.plannable, o)
	}

	return p
}

// isEligible reports whether the employee may serve the order: the service
// type must be within their specialties, and the job site must fall inside
// their work radius or match one of their preferred areas.
func isEligible(emp *employee.Employee, o *order.Order, defaultRadiusKm float64) bool {
	if !emp.IsActive {
		return false
	}
	if o.ServiceType != "" && !emp.HasSpecialty(o.ServiceType) {
		return false
	}

	if matchesPreferredArea(emp.PreferredAreas, o.Address) {
		return true
	}

	home, okHome := emp.HomePoint()
	site, okSite := o.Coordinates()
	if !okHome || !okSite {
		// Without both positions the radius cannot be checked. Declared
		// areas become the filter; only a declared generalist takes
		// unresolved jobs.
		return len(emp.PreferredAreas) == 0
	}

	return geo.DistanceKm(home, site) <= emp.EffectiveWorkRadiusKm(defaultRadiusKm)
}

func matchesPreferredArea(areas []string, address string) bool {
	if len(areas) == 0 || address == "" {
		return false
	}
	addr := strings.ToLower(address)
	for _, area := range areas {
		area = strings.TrimSpace(strings.ToLower(area))
		if area != "" && strings.Contains(addr, area) {
			return true
		}
	}
	return false
}
