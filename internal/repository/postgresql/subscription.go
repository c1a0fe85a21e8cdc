package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/fensterhq/fieldservice-backend-go/internal/domain/subscription"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/database"
)

type subscriptionRepositoryImpl struct {
	db *database.DB
}

func NewSubscriptionRepository(db *database.DB) subscription.SubscriptionRepository {
	return &subscriptionRepositoryImpl{db: db}
}

const subscriptionColumns = `id, user_id, customer_name, service_type, address, latitude, longitude,
	price, estimated_duration, interval_weeks, status,
	to_char(last_generated_date, 'YYYY-MM-DD'), to_char(next_due_date, 'YYYY-MM-DD'),
	created_at, updated_at`

func scanSubscription(row pgx.Row, s *subscription.Subscription) error {
	return row.Scan(
		&s.ID, &s.UserID, &s.CustomerName, &s.ServiceType, &s.Address,
		&s.Latitude, &s.Longitude, &s.Price, &s.EstimatedDuration,
		&s.IntervalWeeks, &s.Status, &s.LastGeneratedDate, &s.NextDueDate,
		&s.CreatedAt, &s.UpdatedAt,
	)
}

// Create implements subscription.SubscriptionRepository.
func (r *subscriptionRepositoryImpl) Create(ctx context.Context, s *subscription.Subscription) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO subscriptions (
			user_id, customer_name, service_type, address, latitude, longitude,
			price, estimated_duration, interval_weeks, status, next_due_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		s.UserID, s.CustomerName, s.ServiceType, s.Address, s.Latitude, s.Longitude,
		s.Price, s.EstimatedDuration, s.IntervalWeeks, s.Status, s.NextDueDate,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	return nil
}

// GetByID implements subscription.SubscriptionRepository.
func (r *subscriptionRepositoryImpl) GetByID(ctx context.Context, userID, id string) (*subscription.Subscription, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM subscriptions
		WHERE id = $1 AND user_id = $2
	`, subscriptionColumns)

	var s subscription.Subscription
	err := scanSubscription(q.QueryRow(ctx, query, id, userID), &s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, subscription.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to get subscription by id: %w", err)
	}

	return &s, nil
}

// List implements subscription.SubscriptionRepository.
func (r *subscriptionRepositoryImpl) List(ctx context.Context, userID string, filter subscription.SubscriptionFilter) ([]subscription.Subscription, int, error) {
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
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM subscriptions WHERE %s", where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
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
		FROM subscriptions
		WHERE %s
		ORDER BY customer_name
		LIMIT $%d OFFSET $%d
	`, subscriptionColumns, where, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []subscription.Subscription
	for rows.Next() {
		var s subscription.Subscription
		if err := scanSubscription(rows, &s); err != nil {
			return nil, 0, err
		}
		subs = append(subs, s)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return subs, total, nil
}

// ListDue implements subscription.SubscriptionRepository.
func (r *subscriptionRepositoryImpl) ListDue(ctx context.Context, beforeDate string) ([]subscription.Subscription, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM subscriptions
		WHERE status = 'active' AND next_due_date IS NOT NULL AND next_due_date <= $1
		ORDER BY next_due_date
	`, subscriptionColumns)

	rows, err := q.Query(ctx, query, beforeDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list due subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []subscription.Subscription
	for rows.Next() {
		var s subscription.Subscription
		if err := scanSubscription(rows, &s); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return subs, nil
}

// Update implements subscription.SubscriptionRepository.
func (r *subscriptionRepositoryImpl) Update(ctx context.Context, s *subscription.Subscription) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE subscriptions
		SET customer_name = $1, service_type = $2, address = $3, latitude = $4, longitude = $5,
			price = $6, estimated_duration = $7, interval_weeks = $8, status = $9,
			last_generated_date = $10, next_due_date = $11, updated_at = NOW()
		WHERE id = $12 AND user_id = $13
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		s.CustomerName, s.ServiceType, s.Address, s.Latitude, s.Longitude,
		s.Price, s.EstimatedDuration, s.IntervalWeeks, s.Status,
		s.LastGeneratedDate, s.NextDueDate, s.ID, s.UserID,
	).Scan(&s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return subscription.ErrSubscriptionNotFound
		}
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	return nil
}

// Delete implements subscription.SubscriptionRepository.
func (r *subscriptionRepositoryImpl) Delete(ctx context.Context, userID, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM subscriptions WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return subscription.ErrSubscriptionNotFound
	}

	return nil
}
