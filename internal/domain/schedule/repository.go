package schedule

import "context"

type ScheduleRepository interface {
	Upsert(ctx context.Context, s *WorkSchedule) error
	ListByEmployee(ctx context.Context, employeeID string) ([]WorkSchedule, error)
	ListByEmployees(ctx context.Context, employeeIDs []string) (map[string][]WorkSchedule, error)
	Delete(ctx context.Context, employeeID string, dayOfWeek int) error
}
