package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/fensterhq/fieldservice-backend-go/internal/domain/order"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/database"
)

type orderRepositoryImpl struct {
	db *database.DB
}

func NewOrderRepository(db *database.DB) order.OrderRepository {
	return &orderRepositoryImpl{db: db}
}

const orderColumns = `id, user_id, customer_name, description, service_type, address, latitude, longitude,
	priority, status, price, estimated_duration, assigned_employee_id,
	to_char(scheduled_date, 'YYYY-MM-DD'), scheduled_time, scheduled_week, sequence_number, route_id,
	subscription_id, subscription_cadence, manually_edited, ai_optimized, created_at, updated_at`

func scanOrder(row pgx.Row, o *order.Order) error {
	return row.Scan(
		&o.ID, &o.UserID, &o.CustomerName, &o.Description, &o.ServiceType,
		&o.Address, &o.Latitude, &o.Longitude, &o.Priority, &o.Status,
		&o.Price, &o.EstimatedDuration, &o.AssignedEmployeeID,
		&o.ScheduledDate, &o.ScheduledTime, &o.ScheduledWeek, &o.SequenceNumber,
		&o.RouteID, &o.SubscriptionID, &o.SubscriptionCadence,
		&o.ManuallyEdited, &o.AIOptimized, &o.CreatedAt, &o.UpdatedAt,
	)
}

func collectOrders(rows pgx.Rows) ([]order.Order, error) {
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		var o order.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// Create implements order.OrderRepository.
func (r *orderRepositoryImpl) Create(ctx context.Context, o *order.Order) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO orders (
			user_id, customer_name, description, service_type, address, latitude, longitude,
			priority, status, price, estimated_duration, scheduled_date, scheduled_time,
			subscription_id, subscription_cadence
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		o.UserID, o.CustomerName, o.Description, o.ServiceType, o.Address,
		o.Latitude, o.Longitude, o.Priority, o.Status, o.Price,
		o.EstimatedDuration, o.ScheduledDate, o.ScheduledTime,
		o.SubscriptionID, o.SubscriptionCadence,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// GetByID implements order.OrderRepository.
func (r *orderRepositoryImpl) GetByID(ctx context.Context, userID, id string) (*order.Order, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE id = $1 AND user_id = $2
	`, orderColumns)

	var o order.Order
	err := scanOrder(q.QueryRow(ctx, query, id, userID), &o)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by id: %w", err)
	}

	return &o, nil
}

// GetByIDs implements order.OrderRepository.
func (r *orderRepositoryImpl) GetByIDs(ctx context.Context, userID string, ids []string) ([]order.Order, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE user_id = $1 AND id = ANY($2)
	`, orderColumns)

	rows, err := q.Query(ctx, query, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders by ids: %w", err)
	}

	return collectOrders(rows)
}

// List implements order.OrderRepository.
func (r *orderRepositoryImpl) List(ctx context.Context, userID string, filter order.OrderFilter) ([]order.Order, int, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}
	argPos := 2

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.Priority != nil {
		conditions = append(conditions, fmt.Sprintf("priority = $%d", argPos))
		args = append(args, *filter.Priority)
		argPos++
	}
	if filter.AssignedEmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("assigned_employee_id = $%d", argPos))
		args = append(args, *filter.AssignedEmployeeID)
		argPos++
	}
	if filter.ScheduledDateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("scheduled_date >= $%d", argPos))
		args = append(args, *filter.ScheduledDateFrom)
		argPos++
	}
	if filter.ScheduledDateTo != nil {
		conditions = append(conditions, fmt.Sprintf("scheduled_date <= $%d", argPos))
		args = append(args, *filter.ScheduledDateTo)
		argPos++
	}
	if filter.Unscheduled {
		conditions = append(conditions, "scheduled_date IS NULL")
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM orders WHERE %s", where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
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
		FROM orders
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, orderColumns, where, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// ListPlannable implements order.OrderRepository. It returns open orders the
// planning engine may consider; protection rules are applied by the engine.
func (r *orderRepositoryImpl) ListPlannable(ctx context.Context, userID string) ([]order.Order, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE user_id = $1 AND status IN ('pending', 'scheduled')
		ORDER BY created_at
	`, orderColumns)

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plannable orders: %w", err)
	}

	return collectOrders(rows)
}

// ListUserIDsWithPendingOrders implements order.OrderRepository. Used by
// the nightly auto-plan job to find tenants with work to schedule.
func (r *orderRepositoryImpl) ListUserIDsWithPendingOrders(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, "SELECT DISTINCT user_id FROM orders WHERE status = 'pending'")
	if err != nil {
		return nil, fmt.Errorf("failed to list users with pending orders: %w", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return userIDs, nil
}

// ListScheduledBetween implements order.OrderRepository.
func (r *orderRepositoryImpl) ListScheduledBetween(ctx context.Context, userID, fromDate, toDate string) ([]order.Order, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE user_id = $1 AND scheduled_date BETWEEN $2 AND $3
		ORDER BY scheduled_date, scheduled_time
	`, orderColumns)

	rows, err := q.Query(ctx, query, userID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled orders: %w", err)
	}

	return collectOrders(rows)
}

// Update implements order.OrderRepository.
func (r *orderRepositoryImpl) Update(ctx context.Context, o *order.Order) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE orders
		SET customer_name = $1, description = $2, service_type = $3, address = $4,
			latitude = $5, longitude = $6, priority = $7, status = $8, price = $9,
			estimated_duration = $10, assigned_employee_id = $11, scheduled_date = $12,
			scheduled_time = $13, scheduled_week = $14, sequence_number = $15, route_id = $16,
			manually_edited = $17, ai_optimized = $18, updated_at = NOW()
		WHERE id = $19 AND user_id = $20
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		o.CustomerName, o.Description, o.ServiceType, o.Address,
		o.Latitude, o.Longitude, o.Priority, o.Status, o.Price,
		o.EstimatedDuration, o.AssignedEmployeeID, o.ScheduledDate,
		o.ScheduledTime, o.ScheduledWeek, o.SequenceNumber, o.RouteID,
		o.ManuallyEdited, o.AIOptimized, o.ID, o.UserID,
	).Scan(&o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.ErrOrderNotFound
		}
		return fmt.Errorf("failed to update order: %w", err)
	}

	return nil
}

// UpdateCoordinates implements order.OrderRepository.
func (r *orderRepositoryImpl) UpdateCoordinates(ctx context.Context, userID, id string, lat, lon float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE orders
		SET latitude = $1, longitude = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
	`

	tag, err := q.Exec(ctx, query, lat, lon, id, userID)
	if err != nil {
		return fmt.Errorf("failed to update order coordinates: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrOrderNotFound
	}

	return nil
}

// ApplyAssignment implements order.OrderRepository.
func (r *orderRepositoryImpl) ApplyAssignment(ctx context.Context, userID string, a order.Assignment) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE orders
		SET assigned_employee_id = $1, scheduled_date = $2, scheduled_time = $3,
			scheduled_week = EXTRACT(WEEK FROM $2::date)::int, sequence_number = $4,
			route_id = $5, status = 'scheduled', ai_optimized = TRUE, updated_at = NOW()
		WHERE id = $6 AND user_id = $7
	`

	tag, err := q.Exec(ctx, query,
		a.EmployeeID, a.ScheduledDate, a.ScheduledTime,
		a.SequenceNumber, a.RouteID, a.OrderID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to apply assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrOrderNotFound
	}

	return nil
}

// Delete implements order.OrderRepository.
func (r *orderRepositoryImpl) Delete(ctx context.Context, userID, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM orders WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrOrderNotFound
	}

	return nil
}
