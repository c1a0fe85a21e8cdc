package schedule

import "context"

type ScheduleService interface {
	Upsert(ctx context.Context, userID, employeeID string, req UpsertScheduleRequest) (*WorkSchedule, error)
	ListByEmployee(ctx context.Context, userID, employeeID string) ([]WorkSchedule, error)
	Delete(ctx context.Context, userID, employeeID string, dayOfWeek int) error
}
