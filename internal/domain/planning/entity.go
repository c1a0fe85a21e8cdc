package planning

import (
	"time"
)

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

type RunTrigger string

const (
	TriggerManual    RunTrigger = "manual"
	TriggerScheduled RunTrigger = "scheduled"
)

// OptimizationRun is the audit record of one planning engine invocation.
type OptimizationRun struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	Status           RunStatus  `json:"status"`
	Trigger          RunTrigger `json:"trigger"`
	OrdersConsidered int        `json:"orders_considered"`
	OrdersAssigned   int        `json:"orders_assigned"`
	OrdersDeferred   int        `json:"orders_deferred"`
	RoutesCreated    int        `json:"routes_created"`
	TotalDistanceKm  float64    `json:"total_distance_km"`
	EfficiencyScore  int        `json:"efficiency_score"`
	ErrorMessage     *string    `json:"error_message,omitempty"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}
