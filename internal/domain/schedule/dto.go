package schedule

import (
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/validator"
)

type UpsertScheduleRequest struct {
	DayOfWeek    int    `json:"day_of_week"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	IsWorkingDay bool   `json:"is_working_day"`
}

func (r *UpsertScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DayOfWeek < 1 || r.DayOfWeek > 7 {
		errs = append(errs, validator.ValidationError{
			Field:   "day_of_week",
			Message: "day of week must be between 1 (Monday) and 7 (Sunday)",
		})
	}
	if !validator.IsValidClock(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start time must use HH:MM format",
		})
	}
	if !validator.IsValidClock(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end time must use HH:MM format",
		})
	}
	if validator.IsValidClock(r.StartTime) && validator.IsValidClock(r.EndTime) &&
		validator.ClockToMinutes(r.EndTime) <= validator.ClockToMinutes(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end time must be after start time",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
