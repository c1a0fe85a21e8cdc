package schedule

import "errors"

var (
	ErrScheduleNotFound  = errors.New("work schedule not found")
	ErrScheduleConflict  = errors.New("work schedule already exists for that day")
	ErrInvalidTimeWindow = errors.New("end time must be after start time")
)
