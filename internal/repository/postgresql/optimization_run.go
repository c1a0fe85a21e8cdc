package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/fensterhq/fieldservice-backend-go/internal/domain/planning"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/database"
)

type runRepositoryImpl struct {
	db *database.DB
}

func NewRunRepository(db *database.DB) planning.RunRepository {
	return &runRepositoryImpl{db: db}
}

const runColumns = `id, user_id, status, trigger_source, orders_considered, orders_assigned,
	orders_deferred, routes_created, total_distance_km, efficiency_score, error_message,
	started_at, completed_at`

func scanRun(row pgx.Row, run *planning.OptimizationRun) error {
	return row.Scan(
		&run.ID, &run.UserID, &run.Status, &run.Trigger,
		&run.OrdersConsidered, &run.OrdersAssigned, &run.OrdersDeferred,
		&run.RoutesCreated, &run.TotalDistanceKm, &run.EfficiencyScore,
		&run.ErrorMessage, &run.StartedAt, &run.CompletedAt,
	)
}

// Create implements planning.RunRepository.
func (r *runRepositoryImpl) Create(ctx context.Context, run *planning.OptimizationRun) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO optimization_runs (user_id, status, trigger_source)
		VALUES ($1, $2, $3)
		RETURNING id, started_at
	`

	err := q.QueryRow(ctx, query, run.UserID, run.Status, run.Trigger).
		Scan(&run.ID, &run.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to create optimization run: %w", err)
	}

	return nil
}

// Update implements planning.RunRepository.
func (r *runRepositoryImpl) Update(ctx context.Context, run *planning.OptimizationRun) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE optimization_runs
		SET status = $1, orders_considered = $2, orders_assigned = $3, orders_deferred = $4,
			routes_created = $5, total_distance_km = $6, efficiency_score = $7,
			error_message = $8, completed_at = NOW()
		WHERE id = $9 AND user_id = $10
		RETURNING completed_at
	`

	err := q.QueryRow(ctx, query,
		run.Status, run.OrdersConsidered, run.OrdersAssigned, run.OrdersDeferred,
		run.RoutesCreated, run.TotalDistanceKm, run.EfficiencyScore,
		run.ErrorMessage, run.ID, run.UserID,
	).Scan(&run.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return planning.ErrRunNotFound
		}
		return fmt.Errorf("failed to update optimization run: %w", err)
	}

	return nil
}

// GetByID implements planning.RunRepository.
func (r *runRepositoryImpl) GetByID(ctx context.Context, userID, id string) (*planning.OptimizationRun, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM optimization_runs
		WHERE id = $1 AND user_id = $2
	`, runColumns)

	var run planning.OptimizationRun
	err := scanRun(q.QueryRow(ctx, query, id, userID), &run)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, planning.ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to get optimization run: %w", err)
	}

	return &run, nil
}

// List implements planning.RunRepository.
func (r *runRepositoryImpl) List(ctx context.Context, userID string, filter planning.RunFilter) ([]planning.OptimizationRun, int, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}
	argPos := 2

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM optimization_runs WHERE %s", where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count optimization runs: %w", err)
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
		FROM optimization_runs
		WHERE %s
		ORDER BY started_at DESC
		LIMIT $%d OFFSET $%d
	`, runColumns, where, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list optimization runs: %w", err)
	}
	defer rows.Close()

	var runs []planning.OptimizationRun
	for rows.Next() {
		var run planning.OptimizationRun
		if err := scanRun(rows, &run); err != nil {
			return nil, 0, err
		}
		runs = append(runs, run)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return runs, total, nil
}
