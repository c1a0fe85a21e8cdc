package postgresql

import (
	"context"
	"fmt"

	"github.com/fensterhq/fieldservice-backend-go/internal/domain/schedule"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/database"
)

type scheduleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepositoryImpl{db: db}
}

// Upsert implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Upsert(ctx context.Context, s *schedule.WorkSchedule) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_schedules (employee_id, day_of_week, start_time, end_time, is_working_day)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, day_of_week)
		DO UPDATE SET start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time,
			is_working_day = EXCLUDED.is_working_day, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.EmployeeID, s.DayOfWeek, s.StartTime, s.EndTime, s.IsWorkingDay,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert work schedule: %w", err)
	}

	return nil
}

// ListByEmployee implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, day_of_week, start_time, end_time, is_working_day, created_at, updated_at
		FROM work_schedules
		WHERE employee_id = $1
		ORDER BY day_of_week
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work schedules: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.WorkSchedule
	for rows.Next() {
		var s schedule.WorkSchedule
		err := rows.Scan(&s.ID, &s.EmployeeID, &s.DayOfWeek, &s.StartTime, &s.EndTime,
			&s.IsWorkingDay, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

// ListByEmployees implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) ListByEmployees(ctx context.Context, employeeIDs []string) (map[string][]schedule.WorkSchedule, error) {
	if len(employeeIDs) == 0 {
		return map[string][]schedule.WorkSchedule{}, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, day_of_week, start_time, end_time, is_working_day, created_at, updated_at
		FROM work_schedules
		WHERE employee_id = ANY($1)
		ORDER BY employee_id, day_of_week
	`

	rows, err := q.Query(ctx, query, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list work schedules: %w", err)
	}
	defer rows.Close()

	byEmployee := make(map[string][]schedule.WorkSchedule)
	for rows.Next() {
		var s schedule.WorkSchedule
		err := rows.Scan(&s.ID, &s.EmployeeID, &s.DayOfWeek, &s.StartTime, &s.EndTime,
			&s.IsWorkingDay, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}
		byEmployee[s.EmployeeID] = append(byEmployee[s.EmployeeID], s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return byEmployee, nil
}

// Delete implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Delete(ctx context.Context, employeeID string, dayOfWeek int) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		"DELETE FROM work_schedules WHERE employee_id = $1 AND day_of_week = $2",
		employeeID, dayOfWeek,
	)
	if err != nil {
		return fmt.Errorf("failed to delete work schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}

	return nil
}
