package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/geo"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityNormal   Priority = "normal"
	PriorityLow      Priority = "low"
)

// Weight returns the scheduling weight for the priority. Unknown values
// fall back to the normal weight.
func (p Priority) Weight() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityNormal:
		return 2
	case PriorityLow:
		return 1
	default:
		return 2
	}
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityNormal, PriorityLow:
		return true
	}
	return false
}

// Order is a geolocated service job to be performed at a customer address.
type Order struct {
	ID                  string          `json:"id"`
	UserID              string          `json:"user_id"`
	CustomerName        string          `json:"customer_name"`
	Description         *string         `json:"description,omitempty"`
	ServiceType         string          `json:"service_type"`
	Address             string          `json:"address"`
	Latitude            *float64        `json:"latitude,omitempty"`
	Longitude           *float64        `json:"longitude,omitempty"`
	Priority            Priority        `json:"priority"`
	Status              Status          `json:"status"`
	Price               decimal.Decimal `json:"price"`
	EstimatedDuration   int             `json:"estimated_duration"`
	AssignedEmployeeID  *string         `json:"assigned_employee_id,omitempty"`
	ScheduledDate       *string         `json:"scheduled_date,omitempty"`
	ScheduledTime       *string         `json:"scheduled_time,omitempty"`
	ScheduledWeek       *int            `json:"scheduled_week,omitempty"`
	SequenceNumber      *int            `json:"sequence_number,omitempty"`
	RouteID             *string         `json:"route_id,omitempty"`
	SubscriptionID      *string         `json:"subscription_id,omitempty"`
	SubscriptionCadence *int            `json:"subscription_cadence,omitempty"`
	ManuallyEdited      bool            `json:"manually_edited"`
	AIOptimized         bool            `json:"ai_optimized"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           *time.Time      `json:"updated_at,omitempty"`
}

// Coordinates returns the order's geocoded position when both values are set.
func (o *Order) Coordinates() (geo.Point, bool) {
	if o.Latitude == nil || o.Longitude == nil {
		return geo.Point{}, false
	}
	return geo.Point{Latitude: *o.Latitude, Longitude: *o.Longitude}, true
}

// HasCompleteSchedule reports whether the order already carries a full
// assignment: employee, date and time slot.
func (o *Order) HasCompleteSchedule() bool {
	return o.AssignedEmployeeID != nil && *o.AssignedEmployeeID != "" &&
		o.ScheduledDate != nil && *o.ScheduledDate != "" &&
		o.ScheduledTime != nil && *o.ScheduledTime != ""
}

// IsSubscriptionOrder reports whether the order was generated from a
// recurring subscription.
func (o *Order) IsSubscriptionOrder() bool {
	return o.SubscriptionID != nil && *o.SubscriptionID != ""
}

// DurationMinutes returns the estimated on-site duration, falling back to
// the given default when the stored value is not positive.
func (o *Order) DurationMinutes(defaultMinutes int) int {
	if o.EstimatedDuration > 0 {
		return o.EstimatedDuration
	}
	return defaultMinutes
}

// RevenueDensity is the price earned per estimated minute of work, used to
// break ties between orders of equal priority.
func (o *Order) RevenueDensity(defaultMinutes int) float64 {
	d := o.DurationMinutes(defaultMinutes)
	if d <= 0 {
		return 0
	}
	price, _ := o.Price.Float64()
	return price / float64(d)
}
