package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/fensterhq/fieldservice-backend-go/internal/domain/employee"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, user_id, name, email, phone, home_address, home_latitude, home_longitude,
	specialties, preferred_areas, work_radius_km, max_hours_per_day, is_active, created_at, updated_at`

func scanEmployee(row pgx.Row, emp *employee.Employee) error {
	return row.Scan(
		&emp.ID, &emp.UserID, &emp.Name, &emp.Email, &emp.Phone,
		&emp.HomeAddress, &emp.HomeLatitude, &emp.HomeLongitude,
		&emp.Specialties, &emp.PreferredAreas, &emp.WorkRadiusKm,
		&emp.MaxHoursPerDay, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
	)
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, emp *employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			user_id, name, email, phone, home_address, home_latitude, home_longitude,
			specialties, preferred_areas, work_radius_km, max_hours_per_day, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		emp.UserID, emp.Name, emp.Email, emp.Phone, emp.HomeAddress,
		emp.HomeLatitude, emp.HomeLongitude, emp.Specialties, emp.PreferredAreas,
		emp.WorkRadiusKm, emp.MaxHoursPerDay, emp.IsActive,
	).Scan(&emp.ID, &emp.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}

	return nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, userID, id string) (*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE id = $1 AND user_id = $2
	`, employeeColumns)

	var emp employee.Employee
	err := scanEmployee(q.QueryRow(ctx, query, id, userID), &emp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee by id: %w", err)
	}

	return &emp, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, userID string, filter employee.EmployeeFilter) ([]employee.Employee, int, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}
	argPos := 2

	if filter.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *filter.IsActive)
		argPos++
	}
	if filter.Specialty != nil {
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(specialties)", argPos))
		args = append(args, *filter.Specialty)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM employees WHERE %s", where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE %s
		ORDER BY name
		LIMIT $%d OFFSET $%d
	`, employeeColumns, where, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := scanEmployee(rows, &emp); err != nil {
			return nil, 0, err
		}
		employees = append(employees, emp)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActive(ctx context.Context, userID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY name
	`, employeeColumns)

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := scanEmployee(rows, &emp); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, emp *employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET name = $1, email = $2, phone = $3, home_address = $4, home_latitude = $5,
			home_longitude = $6, specialties = $7, preferred_areas = $8, work_radius_km = $9,
			max_hours_per_day = $10, is_active = $11, updated_at = NOW()
		WHERE id = $12 AND user_id = $13
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.Name, emp.Email, emp.Phone, emp.HomeAddress, emp.HomeLatitude,
		emp.HomeLongitude, emp.Specialties, emp.PreferredAreas, emp.WorkRadiusKm,
		emp.MaxHoursPerDay, emp.IsActive, emp.ID, emp.UserID,
	).Scan(&emp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}

	return nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, userID, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM employees WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
