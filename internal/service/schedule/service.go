package schedule

import (
	"context"

	"github.com/fensterhq/fieldservice-backend-go/internal/domain/employee"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/schedule"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/database"
)

type ScheduleServiceImpl struct {
	db *database.DB
	schedule.ScheduleRepository
	employee.EmployeeRepository
}

func NewScheduleService(db *database.DB, scheduleRepository schedule.ScheduleRepository, employeeRepository employee.EmployeeRepository) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		db:                 db,
		ScheduleRepository: scheduleRepository,
		EmployeeRepository: employeeRepository,
	}
}

// Upsert implements schedule.ScheduleService. The employee lookup doubles
// as the ownership check.
func (s *ScheduleServiceImpl) Upsert(ctx context.Context, userID, employeeID string, req schedule.UpsertScheduleRequest) (*schedule.WorkSchedule, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, userID, employeeID); err != nil {
		return nil, err
	}

	ws := &schedule.WorkSchedule{
		EmployeeID:   employeeID,
		DayOfWeek:    req.DayOfWeek,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		IsWorkingDay: req.IsWorkingDay,
	}

	if err := s.ScheduleRepository.Upsert(ctx, ws); err != nil {
		return nil, err
	}

	return ws, nil
}

// ListByEmployee implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListByEmployee(ctx context.Context, userID, employeeID string) ([]schedule.WorkSchedule, error) {
	if _, err := s.EmployeeRepository.GetByID(ctx, userID, employeeID); err != nil {
		return nil, err
	}
	return s.ScheduleRepository.ListByEmployee(ctx, employeeID)
}

// Delete implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Delete(ctx context.Context, userID, employeeID string, dayOfWeek int) error {
	if _, err := s.EmployeeRepository.GetByID(ctx, userID, employeeID); err != nil {
		return err
	}
	return s.ScheduleRepository.Delete(ctx, employeeID, dayOfWeek)
}
