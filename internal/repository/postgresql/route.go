package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/fensterhq/fieldservice-backend-go/internal/domain/route"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/database"
)

type routeRepositoryImpl struct {
	db *database.DB
}

func NewRouteRepository(db *database.DB) route.RouteRepository {
	return &routeRepositoryImpl{db: db}
}

const routeColumns = `id, user_id, employee_id, name, to_char(route_date, 'YYYY-MM-DD'),
	total_distance_km, total_duration_min, total_revenue, stop_count, efficiency_score,
	optimization_run_id, created_at, updated_at`

func scanRoute(row pgx.Row, rt *route.Route) error {
	return row.Scan(
		&rt.ID, &rt.UserID, &rt.EmployeeID, &rt.Name, &rt.RouteDate,
		&rt.TotalDistanceKm, &rt.TotalDurationMin, &rt.TotalRevenue, &rt.StopCount,
		&rt.EfficiencyScore, &rt.OptimizationRunID, &rt.CreatedAt, &rt.UpdatedAt,
	)
}

// Create implements route.RouteRepository.
func (r *routeRepositoryImpl) Create(ctx context.Context, rt *route.Route) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO routes (
			user_id, employee_id, name, route_date, total_distance_km,
			total_duration_min, total_revenue, stop_count, efficiency_score, optimization_run_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		rt.UserID, rt.EmployeeID, rt.Name, rt.RouteDate, rt.TotalDistanceKm,
		rt.TotalDurationMin, rt.TotalRevenue, rt.StopCount, rt.EfficiencyScore, rt.OptimizationRunID,
	).Scan(&rt.ID, &rt.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create route: %w", err)
	}

	return nil
}

// GetByID implements route.RouteRepository.
func (r *routeRepositoryImpl) GetByID(ctx context.Context, userID, id string) (*route.RouteWithStops, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM routes
		WHERE id = $1 AND user_id = $2
	`, routeColumns)

	var result route.RouteWithStops
	err := scanRoute(q.QueryRow(ctx, query, id, userID), &result.Route)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, route.ErrRouteNotFound
		}
		return nil, fmt.Errorf("failed to get route by id: %w", err)
	}

	stopsQuery := `
		SELECT id, customer_name, address, COALESCE(scheduled_time, ''), COALESCE(sequence_number, 0),
			estimated_duration, priority, latitude, longitude
		FROM orders
		WHERE route_id = $1 AND user_id = $2
		ORDER BY sequence_number
	`

	rows, err := q.Query(ctx, stopsQuery, id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list route stops: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s route.Stop
		err := rows.Scan(&s.OrderID, &s.CustomerName, &s.Address, &s.ScheduledTime,
			&s.SequenceNumber, &s.DurationMin, &s.Priority, &s.Latitude, &s.Longitude)
		if err != nil {
			return nil, err
		}
		result.Stops = append(result.Stops, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &result, nil
}

// List implements route.RouteRepository.
func (r *routeRepositoryImpl) List(ctx context.Context, userID string, filter route.RouteFilter) ([]route.Route, int, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}
	argPos := 2

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argPos))
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("route_date >= $%d", argPos))
		args = append(args, *filter.DateFrom)
		argPos++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("route_date <= $%d", argPos))
		args = append(args, *filter.DateTo)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM routes WHERE %s", where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count routes: %w", err)
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
		FROM routes
		WHERE %s
		ORDER BY route_date DESC, name
		LIMIT $%d OFFSET $%d
	`, routeColumns, where, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list routes: %w", err)
	}
	defer rows.Close()

	var routes []route.Route
	for rows.Next() {
		var rt route.Route
		if err := scanRoute(rows, &rt); err != nil {
			return nil, 0, err
		}
		routes = append(routes, rt)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return routes, total, nil
}

// DeleteByRunScope implements route.RouteRepository. It removes routes that
// only contain orders about to be replanned, so a rerun does not leave
// orphaned route rows behind.
func (r *routeRepositoryImpl) DeleteByRunScope(ctx context.Context, userID string, orderIDs []string) error {
	if len(orderIDs) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM routes
		WHERE user_id = $1
		AND id IN (SELECT DISTINCT route_id FROM orders WHERE route_id IS NOT NULL AND id = ANY($2))
		AND NOT EXISTS (
			SELECT 1 FROM orders o
			WHERE o.route_id = routes.id AND NOT (o.id = ANY($2))
		)
	`

	if _, err := q.Exec(ctx, query, userID, orderIDs); err != nil {
		return fmt.Errorf("failed to delete superseded routes: %w", err)
	}

	return nil
}

// Delete implements route.RouteRepository.
func (r *routeRepositoryImpl) Delete(ctx context.Context, userID, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM routes WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete route: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return route.ErrRouteNotFound
	}

	return nil
}
