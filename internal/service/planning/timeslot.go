package planning

import (
	"github.com/fensterhq/fieldservice-backend-go/internal/config"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/geo"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/validator"
)

// timedStop is a sequenced stop with its allocated start time.
type timedStop struct {
	sequencedStop
	startMin int
	endMin   int
}

// allocateTimeSlots walks the sequence from the window start, inserting a
// travel buffer before every stop. The first buffer covers the drive from
// home, the rest the legs between consecutive stops. Stops that would run
// past the window end are returned as overflow and must be rescheduled by
// the caller.
func allocateTimeSlots(cfg config.PlanningConfig, window dayWindow, stops []sequencedStop) (allocated []timedStop, overflow []sequencedStop) {
	cursor := window.startMin

	for i, s := range stops {
		cursor += geo.TravelMinutes(s.legKm, cfg.TravelMinutesPerKm)

		duration := s.order.DurationMinutes(cfg.DefaultDurationMinutes)
		if cursor+duration > window.endMin {
			overflow = append(overflow, stops[i:]...)
			break
		}

		allocated = append(allocated, timedStop{
			sequencedStop: s,
			startMin:      cursor,
			endMin:        cursor + duration,
		})
		cursor += duration
	}

	return allocated, overflow
}

// clockOf renders a stop's start as HH:MM.
func (t timedStop) clockOf() string {
	return validator.MinutesToClock(t.startMin)
}
