package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/fensterhq/fieldservice-backend-go/internal/domain/order"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/subscription"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/database"
	"github.com/fensterhq/fieldservice-backend-go/internal/repository/postgresql"
)

const dateLayout = "2006-01-02"

type SubscriptionServiceImpl struct {
	db *database.DB
	subscription.SubscriptionRepository
	order.OrderRepository
}

func NewSubscriptionService(db *database.DB, subscriptionRepository subscription.SubscriptionRepository, orderRepository order.OrderRepository) subscription.SubscriptionService {
	return &SubscriptionServiceImpl{
		db:                     db,
		SubscriptionRepository: subscriptionRepository,
		OrderRepository:        orderRepository,
	}
}

// Create implements subscription.SubscriptionService.
func (s *SubscriptionServiceImpl) Create(ctx context.Context, userID string, req subscription.CreateSubscriptionRequest) (*subscription.Subscription, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	price := decimal.Zero
	if req.Price != nil {
		price = *req.Price
	}
	duration := 60
	if req.EstimatedDuration != nil {
		duration = *req.EstimatedDuration
	}

	sub := &subscription.Subscription{
		UserID:            userID,
		CustomerName:      req.CustomerName,
		ServiceType:       req.ServiceType,
		Address:           req.Address,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		Price:             price,
		EstimatedDuration: duration,
		IntervalWeeks:     req.IntervalWeeks,
		Status:            subscription.StatusActive,
		NextDueDate:       req.FirstDueDate,
	}
	if sub.NextDueDate == nil {
		due := time.Now().Format(dateLayout)
		sub.NextDueDate = &due
	}

	if err := s.SubscriptionRepository.Create(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

// GetByID implements subscription.SubscriptionService.
func (s *SubscriptionServiceImpl) GetByID(ctx context.Context, userID, id string) (*subscription.Subscription, error) {
	return s.SubscriptionRepository.GetByID(ctx, userID, id)
}

// List implements subscription.SubscriptionService.
func (s *SubscriptionServiceImpl) List(ctx context.Context, userID string, filter subscription.SubscriptionFilter) ([]subscription.Subscription, int, error) {
	return s.SubscriptionRepository.List(ctx, userID, filter)
}

// Update implements subscription.SubscriptionService.
func (s *SubscriptionServiceImpl) Update(ctx context.Context, userID, id string, req subscription.UpdateSubscriptionRequest) (*subscription.Subscription, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sub, err := s.SubscriptionRepository.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerName != nil {
		sub.CustomerName = *req.CustomerName
	}
	if req.ServiceType != nil {
		sub.ServiceType = *req.ServiceType
	}
	if req.Address != nil {
		sub.Address = *req.Address
	}
	if req.Price != nil {
		sub.Price = *req.Price
	}
	if req.EstimatedDuration != nil {
		sub.EstimatedDuration = *req.EstimatedDuration
	}
	if req.IntervalWeeks != nil {
		sub.IntervalWeeks = *req.IntervalWeeks
	}
	if req.Status != nil {
		sub.Status = *req.Status
	}

	if err := s.SubscriptionRepository.Update(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

// Delete implements subscription.SubscriptionService.
func (s *SubscriptionServiceImpl) Delete(ctx context.Context, userID, id string) error {
	return s.SubscriptionRepository.Delete(ctx, userID, id)
}

// GenerateUpcomingOrders implements subscription.SubscriptionService. Each
// due subscription gets a pending order carrying the due date, so the
// planner keeps the customer's week cadence, and the subscription advances
// by its interval. One failing subscription does not block the rest.
func (s *SubscriptionServiceImpl) GenerateUpcomingOrders(ctx context.Context, horizonDays int) (int, error) {
	cutoff := time.Now().AddDate(0, 0, horizonDays).Format(dateLayout)

	due, err := s.SubscriptionRepository.ListDue(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("list due subscriptions: %w", err)
	}

	generated := 0
	for i := range due {
		sub := due[i]
		if err := s.generateOrder(ctx, &sub); err != nil {
			slog.Error("failed to generate subscription order",
				"subscription_id", sub.ID, "error", err)
			continue
		}
		generated++
	}

	return generated, nil
}

func (s *SubscriptionServiceImpl) generateOrder(ctx context.Context, sub *subscription.Subscription) error {
	dueDate := *sub.NextDueDate
	due, err := time.Parse(dateLayout, dueDate)
	if err != nil {
		return fmt.Errorf("invalid next due date %q: %w", dueDate, err)
	}

	cadence := sub.IntervalWeeks
	o := &order.Order{
		UserID:              sub.UserID,
		CustomerName:        sub.CustomerName,
		ServiceType:         sub.ServiceType,
		Address:             sub.Address,
		Latitude:            sub.Latitude,
		Longitude:           sub.Longitude,
		Priority:            order.PriorityNormal,
		Status:              order.StatusPending,
		Price:               sub.Price,
		EstimatedDuration:   sub.EstimatedDuration,
		ScheduledDate:       &dueDate,
		SubscriptionID:      &sub.ID,
		SubscriptionCadence: &cadence,
	}

	nextDue := due.AddDate(0, 0, sub.IntervalWeeks*7).Format(dateLayout)

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.OrderRepository.Create(txCtx, o); err != nil {
			return err
		}

		sub.LastGeneratedDate = &dueDate
		sub.NextDueDate = &nextDue
		return s.SubscriptionRepository.Update(txCtx, sub)
	})
}
