package subscription

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive Status = "active"
	StatusPaused Status = "paused"
	StatusEnded  Status = "ended"
)

// Subscription is a recurring service agreement that spawns orders on a
// fixed week cadence.
type Subscription struct {
	ID                string          `json:"id"`
	UserID            string          `json:"user_id"`
	CustomerName      string          `json:"customer_name"`
	ServiceType       string          `json:"service_type"`
	Address           string          `json:"address"`
	Latitude          *float64        `json:"latitude,omitempty"`
	Longitude         *float64        `json:"longitude,omitempty"`
	Price             decimal.Decimal `json:"price"`
	EstimatedDuration int             `json:"estimated_duration"`
	IntervalWeeks     int             `json:"interval_weeks"`
	Status            Status          `json:"status"`
	LastGeneratedDate *string         `json:"last_generated_date,omitempty"`
	NextDueDate       *string         `json:"next_due_date,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         *time.Time      `json:"updated_at,omitempty"`
}
