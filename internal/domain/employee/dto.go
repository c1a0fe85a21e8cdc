package employee

import (
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Name           string   `json:"name"`
	Email          *string  `json:"email,omitempty"`
	Phone          *string  `json:"phone,omitempty"`
	HomeAddress    *string  `json:"home_address,omitempty"`
	HomeLatitude   *float64 `json:"home_latitude,omitempty"`
	HomeLongitude  *float64 `json:"home_longitude,omitempty"`
	Specialties    []string `json:"specialties"`
	PreferredAreas []string `json:"preferred_areas"`
	WorkRadiusKm   *float64 `json:"work_radius_km,omitempty"`
	MaxHoursPerDay *int     `json:"max_hours_per_day,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}
	if r.HomeLatitude != nil && !validator.IsValidLatitude(*r.HomeLatitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "home_latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if r.HomeLongitude != nil && !validator.IsValidLongitude(*r.HomeLongitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "home_longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	if (r.HomeLatitude == nil) != (r.HomeLongitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "home_latitude",
			Message: "latitude and longitude must be provided together",
		})
	}
	if r.WorkRadiusKm != nil && *r.WorkRadiusKm <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "work_radius_km",
			Message: "work radius must be positive",
		})
	}
	if r.MaxHoursPerDay != nil && (*r.MaxHoursPerDay < 1 || *r.MaxHoursPerDay > 24) {
		errs = append(errs, validator.ValidationError{
			Field:   "max_hours_per_day",
			Message: "max hours per day must be between 1 and 24",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	Name           *string  `json:"name,omitempty"`
	Email          *string  `json:"email,omitempty"`
	Phone          *string  `json:"phone,omitempty"`
	HomeAddress    *string  `json:"home_address,omitempty"`
	HomeLatitude   *float64 `json:"home_latitude,omitempty"`
	HomeLongitude  *float64 `json:"home_longitude,omitempty"`
	Specialties    []string `json:"specialties,omitempty"`
	PreferredAreas []string `json:"preferred_areas,omitempty"`
	WorkRadiusKm   *float64 `json:"work_radius_km,omitempty"`
	MaxHoursPerDay *int     `json:"max_hours_per_day,omitempty"`
	IsActive       *bool    `json:"is_active,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name cannot be empty",
		})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}
	if r.HomeLatitude != nil && !validator.IsValidLatitude(*r.HomeLatitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "home_latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if r.HomeLongitude != nil && !validator.IsValidLongitude(*r.HomeLongitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "home_longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	if r.WorkRadiusKm != nil && *r.WorkRadiusKm <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "work_radius_km",
			Message: "work radius must be positive",
		})
	}
	if r.MaxHoursPerDay != nil && (*r.MaxHoursPerDay < 1 || *r.MaxHoursPerDay > 24) {
		errs = append(errs, validator.ValidationError{
			Field:   "max_hours_per_day",
			Message: "max hours per day must be between 1 and 24",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeFilter struct {
	IsActive  *bool
	Specialty *string
	Page      int
	Limit     int
}
