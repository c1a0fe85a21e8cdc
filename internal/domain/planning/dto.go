package planning

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/validator"
)

type OptimizeRequest struct {
	// OrderIDs limits the run to the given orders. Empty means every
	// plannable order for the user.
	OrderIDs []string `json:"order_ids,omitempty"`
	// WeekStart anchors the planning horizon. Must be a Monday in
	// YYYY-MM-DD format; empty defaults to the current week's Monday.
	WeekStart     string `json:"week_start,omitempty"`
	WeeksAhead    int    `json:"weeks_ahead,omitempty"`
	ForceOptimize bool   `json:"force_optimize,omitempty"`
}

func (r *OptimizeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.WeekStart != "" {
		if !validator.IsValidDate(r.WeekStart) {
			errs = append(errs, validator.ValidationError{
				Field:   "week_start",
				Message: "week start must use YYYY-MM-DD format",
			})
		} else if d, err := time.Parse("2006-01-02", r.WeekStart); err == nil && d.Weekday() != time.Monday {
			errs = append(errs, validator.ValidationError{
				Field:   "week_start",
				Message: "week start must be a Monday",
			})
		}
	}
	if r.WeeksAhead < 0 || r.WeeksAhead > 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "weeks_ahead",
			Message: "weeks ahead must be between 0 and 8",
		})
	}
	for _, id := range r.OrderIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "order_ids",
				Message: "order ids must be valid UUIDs",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SkippedOrder explains why a considered order was not assigned.
type SkippedOrder struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

// RouteSummary is the per-route slice of an optimization result.
type RouteSummary struct {
	RouteID         string          `json:"route_id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    string          `json:"employee_name"`
	RouteDate       string          `json:"route_date"`
	StopCount       int             `json:"stop_count"`
	TotalDistanceKm float64         `json:"total_distance_km"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	EfficiencyScore int             `json:"efficiency_score"`
}

type OptimizeResult struct {
	RunID            string          `json:"run_id"`
	OrdersConsidered int             `json:"orders_considered"`
	OrdersAssigned   int             `json:"orders_assigned"`
	OrdersDeferred   int             `json:"orders_deferred"`
	RoutesCreated    int             `json:"routes_created"`
	TotalDistanceKm  float64         `json:"total_distance_km"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	EfficiencyScore  int             `json:"efficiency_score"`
	Routes           []RouteSummary  `json:"routes"`
	Skipped          []SkippedOrder  `json:"skipped,omitempty"`
	Message          string          `json:"message"`
}

type RunFilter struct {
	Status *RunStatus
	Page   int
	Limit  int
}
