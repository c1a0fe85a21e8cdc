package order

import (
	"github.com/shopspring/decimal"

	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/validator"
)

type CreateOrderRequest struct {
	CustomerName      string           `json:"customer_name"`
	Description       *string          `json:"description,omitempty"`
	ServiceType       string           `json:"service_type"`
	Address           string           `json:"address"`
	Latitude          *float64         `json:"latitude,omitempty"`
	Longitude         *float64         `json:"longitude,omitempty"`
	Priority          Priority         `json:"priority"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	EstimatedDuration *int             `json:"estimated_duration,omitempty"`
	ScheduledDate     *string          `json:"scheduled_date,omitempty"`
	ScheduledTime     *string          `json:"scheduled_time,omitempty"`
	SubscriptionID    *string          `json:"subscription_id,omitempty"`
}

func (r *CreateOrderRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CustomerName) {
		errs = append(errs, validator.ValidationError{
			Field:   "customer_name",
			Message: "customer name is required",
		})
	}
	if validator.IsEmpty(r.Address) {
		errs = append(errs, validator.ValidationError{
			Field:   "address",
			Message: "address is required",
		})
	}
	if r.Priority != "" && !r.Priority.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be one of critical, high, normal, low",
		})
	}
	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	if r.EstimatedDuration != nil && *r.EstimatedDuration <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "estimated_duration",
			Message: "estimated duration must be positive",
		})
	}
	if r.ScheduledDate != nil && !validator.IsValidDate(*r.ScheduledDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "scheduled_date",
			Message: "scheduled date must use YYYY-MM-DD format",
		})
	}
	if r.ScheduledTime != nil && !validator.IsValidClock(*r.ScheduledTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "scheduled_time",
			Message: "scheduled time must use HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateOrderRequest struct {
	CustomerName       *string          `json:"customer_name,omitempty"`
	Description        *string          `json:"description,omitempty"`
	ServiceType        *string          `json:"service_type,omitempty"`
	Address            *string          `json:"address,omitempty"`
	Latitude           *float64         `json:"latitude,omitempty"`
	Longitude          *float64         `json:"longitude,omitempty"`
	Priority           *Priority        `json:"priority,omitempty"`
	Status             *Status          `json:"status,omitempty"`
	Price              *decimal.Decimal `json:"price,omitempty"`
	EstimatedDuration  *int             `json:"estimated_duration,omitempty"`
	AssignedEmployeeID *string          `json:"assigned_employee_id,omitempty"`
	ScheduledDate      *string          `json:"scheduled_date,omitempty"`
	ScheduledTime      *string          `json:"scheduled_time,omitempty"`
}

func (r *UpdateOrderRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.CustomerName != nil && validator.IsEmpty(*r.CustomerName) {
		errs = append(errs, validator.ValidationError{
			Field:   "customer_name",
			Message: "customer name cannot be empty",
		})
	}
	if r.Priority != nil && !r.Priority.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be one of critical, high, normal, low",
		})
	}
	if r.Status != nil {
		switch *r.Status {
		case StatusPending, StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		default:
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "invalid status",
			})
		}
	}
	if r.ScheduledDate != nil && *r.ScheduledDate != "" && !validator.IsValidDate(*r.ScheduledDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "scheduled_date",
			Message: "scheduled date must use YYYY-MM-DD format",
		})
	}
	if r.ScheduledTime != nil && *r.ScheduledTime != "" && !validator.IsValidClock(*r.ScheduledTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "scheduled_time",
			Message: "scheduled time must use HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ReschedulesOrder reports whether the update moves the order's assignment,
// which marks it as manually edited.
func (r *UpdateOrderRequest) ReschedulesOrder() bool {
	return r.AssignedEmployeeID != nil || r.ScheduledDate != nil || r.ScheduledTime != nil
}

type OrderFilter struct {
	Status             *Status
	Priority           *Priority
	AssignedEmployeeID *string
	ScheduledDateFrom  *string
	ScheduledDateTo    *string
	Unscheduled        bool
	Page               int
	Limit              int
}

// Assignment is the write set produced by the planning engine for a single
// order.
type Assignment struct {
	OrderID          string
	EmployeeID       string
	ScheduledDate    string
	ScheduledTime    string
	SequenceNumber   int
	RouteID          string
	DistanceKmScaled float64
}
