package employee

import (
	"context"

	"github.com/fensterhq/fieldservice-backend-go/internal/domain/employee"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/database"
)

type EmployeeServiceImpl struct {
	db *database.DB
	employee.EmployeeRepository
}

func NewEmployeeService(db *database.DB, employeeRepository employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:                 db,
		EmployeeRepository: employeeRepository,
	}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, userID string, req employee.CreateEmployeeRequest) (*employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	maxHours := 8
	if req.MaxHoursPerDay != nil {
		maxHours = *req.MaxHoursPerDay
	}

	emp := &employee.Employee{
		UserID:         userID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		HomeAddress:    req.HomeAddress,
		HomeLatitude:   req.HomeLatitude,
		HomeLongitude:  req.HomeLongitude,
		Specialties:    req.Specialties,
		PreferredAreas: req.PreferredAreas,
		WorkRadiusKm:   req.WorkRadiusKm,
		MaxHoursPerDay: maxHours,
		IsActive:       true,
	}
	if emp.Specialties == nil {
		emp.Specialties = []string{}
	}
	if emp.PreferredAreas == nil {
		emp.PreferredAreas = []string{}
	}

	if err := s.EmployeeRepository.Create(ctx, emp); err != nil {
		return nil, err
	}

	return emp, nil
}

// GetByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByID(ctx context.Context, userID, id string) (*employee.Employee, error) {
	return s.EmployeeRepository.GetByID(ctx, userID, id)
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, userID string, filter employee.EmployeeFilter) ([]employee.Employee, int, error) {
	return s.EmployeeRepository.List(ctx, userID, filter)
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, userID, id string, req employee.UpdateEmployeeRequest) (*employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.Email != nil {
		emp.Email = req.Email
	}
	if req.Phone != nil {
		emp.Phone = req.Phone
	}
	if req.HomeAddress != nil {
		emp.HomeAddress = req.HomeAddress
	}
	if req.HomeLatitude != nil {
		emp.HomeLatitude = req.HomeLatitude
	}
	if req.HomeLongitude != nil {
		emp.HomeLongitude = req.HomeLongitude
	}
	if req.Specialties != nil {
		emp.Specialties = req.Specialties
	}
	if req.PreferredAreas != nil {
		emp.PreferredAreas = req.PreferredAreas
	}
	if req.WorkRadiusKm != nil {
		emp.WorkRadiusKm = req.WorkRadiusKm
	}
	if req.MaxHoursPerDay != nil {
		emp.MaxHoursPerDay = *req.MaxHoursPerDay
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}

	if err := s.EmployeeRepository.Update(ctx, emp); err != nil {
		return nil, err
	}

	return emp, nil
}

// Delete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, userID, id string) error {
	return s.EmployeeRepository.Delete(ctx, userID, id)
}
