package subscription

import (
	"github.com/shopspring/decimal"

	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/validator"
)

type CreateSubscriptionRequest struct {
	CustomerName      string           `json:"customer_name"`
	ServiceType       string           `json:"service_type"`
	Address           string           `json:"address"`
	Latitude          *float64         `json:"latitude,omitempty"`
	Longitude         *float64         `json:"longitude,omitempty"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	EstimatedDuration *int             `json:"estimated_duration,omitempty"`
	IntervalWeeks     int              `json:"interval_weeks"`
	FirstDueDate      *string          `json:"first_due_date,omitempty"`
}

func (r *CreateSubscriptionRequest) Validate() error {
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
	if r.IntervalWeeks < 1 || r.IntervalWeeks > 52 {
		errs = append(errs, validator.ValidationError{
			Field:   "interval_weeks",
			Message: "interval weeks must be between 1 and 52",
		})
	}
	if r.FirstDueDate != nil && !validator.IsValidDate(*r.FirstDueDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_due_date",
			Message: "first due date must use YYYY-MM-DD format",
		})
	}
	if r.EstimatedDuration != nil && *r.EstimatedDuration <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "estimated_duration",
			Message: "estimated duration must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateSubscriptionRequest struct {
	CustomerName      *string          `json:"customer_name,omitempty"`
	ServiceType       *string          `json:"service_type,omitempty"`
	Address           *string          `json:"address,omitempty"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	EstimatedDuration *int             `json:"estimated_duration,omitempty"`
	IntervalWeeks     *int             `json:"interval_weeks,omitempty"`
	Status            *Status          `json:"status,omitempty"`
}

func (r *UpdateSubscriptionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.IntervalWeeks != nil && (*r.IntervalWeeks < 1 || *r.IntervalWeeks > 52) {
		errs = append(errs, validator.ValidationError{
			Field:   "interval_weeks",
			Message: "interval weeks must be between 1 and 52",
		})
	}
	if r.Status != nil {
		switch *r.Status {
		case StatusActive, StatusPaused, StatusEnded:
		default:
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "invalid status",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SubscriptionFilter struct {
	Status *Status
	Page   int
	Limit  int
}
