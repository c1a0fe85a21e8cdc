package route

import (
	"time"

	"github.com/shopspring/decimal"
)

// Route is one employee's ordered stop list for a single date, produced by
// an optimization run or assembled by hand.
type Route struct {
	ID                string          `json:"id"`
	UserID            string          `json:"user_id"`
	EmployeeID        string          `json:"employee_id"`
	Name              string          `json:"name"`
	RouteDate         string          `json:"route_date"`
	TotalDistanceKm   float64         `json:"total_distance_km"`
	TotalDurationMin  int             `json:"total_duration_min"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	StopCount         int             `json:"stop_count"`
	EfficiencyScore   int             `json:"efficiency_score"`
	OptimizationRunID *string         `json:"optimization_run_id,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         *time.Time      `json:"updated_at,omitempty"`
}

// Stop is one visit on a route, joined in from the orders table.
type Stop struct {
	OrderID        string  `json:"order_id"`
	CustomerName   string  `json:"customer_name"`
	Address        string  `json:"address"`
	ScheduledTime  string  `json:"scheduled_time"`
	SequenceNumber int     `json:"sequence_number"`
	DurationMin    int     `json:"duration_min"`
	Priority       string  `json:"priority"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
}

// RouteWithStops is the expanded view returned by the route detail endpoint.
type RouteWithStops struct {
	Route
	Stops []Stop `json:"stops"`
}
