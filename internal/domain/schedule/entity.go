package schedule

import (
	"time"

	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/validator"
)

// WorkSchedule defines one weekday's working window for an employee.
// DayOfWeek follows ISO-8601: 1 is Monday, 7 is Sunday.
type WorkSchedule struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	DayOfWeek    int        `json:"day_of_week"`
	StartTime    string     `json:"start_time"`
	EndTime      string     `json:"end_time"`
	IsWorkingDay bool       `json:"is_working_day"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// WindowMinutes returns the length of the working window in minutes, or 0
// when the day is off or the window is malformed.
func (s *WorkSchedule) WindowMinutes() int {
	if !s.IsWorkingDay {
		return 0
	}
	start := validator.ClockToMinutes(s.StartTime)
	end := validator.ClockToMinutes(s.EndTime)
	if start < 0 || end < 0 || end <= start {
		return 0
	}
	return end - start
}
