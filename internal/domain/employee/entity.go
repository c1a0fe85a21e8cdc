package employee

import (
	"time"

	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/geo"
)

// Employee is a field worker who can be assigned service orders.
type Employee struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Name           string     `json:"name"`
	Email          *string    `json:"email,omitempty"`
	Phone          *string    `json:"phone,omitempty"`
	HomeAddress    *string    `json:"home_address,omitempty"`
	HomeLatitude   *float64   `json:"home_latitude,omitempty"`
	HomeLongitude  *float64   `json:"home_longitude,omitempty"`
	Specialties    []string   `json:"specialties"`
	PreferredAreas []string   `json:"preferred_areas"`
	WorkRadiusKm   *float64   `json:"work_radius_km,omitempty"`
	MaxHoursPerDay int        `json:"max_hours_per_day"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// HomePoint returns the employee's home coordinates when both are set.
func (e *Employee) HomePoint() (geo.Point, bool) {
	if e.HomeLatitude == nil || e.HomeLongitude == nil {
		return geo.Point{}, false
	}
	return geo.Point{Latitude: *e.HomeLatitude, Longitude: *e.HomeLongitude}, true
}

// EffectiveWorkRadiusKm falls back to the given default when the employee
// has no explicit radius configured.
func (e *Employee) EffectiveWorkRadiusKm(defaultKm float64) float64 {
	if e.WorkRadiusKm != nil && *e.WorkRadiusKm > 0 {
		return *e.WorkRadiusKm
	}
	return defaultKm
}

// HasSpecialty reports whether the employee carries the given specialty.
// An employee with no specialties recorded is treated as a generalist.
func (e *Employee) HasSpecialty(specialty string) bool {
	if len(e.Specialties) == 0 {
		return true
	}
	for _, s := range e.Specialties {
		if s == specialty {
			return true
		}
	}
	return false
}
