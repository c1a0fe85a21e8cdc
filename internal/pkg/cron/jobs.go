package cron

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fensterhq/fieldservice-backend-go/internal/domain/order"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/planning"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/subscription"
)

const subscriptionHorizonDays = 28

// RegisterSubscriptionJob generates orders for due subscriptions once a
// day, far enough ahead that the planner can slot them into their cadence
// week.
func RegisterSubscriptionJob(s *Scheduler, svc subscription.SubscriptionService) {
	s.AddJob("subscription-order-generation", 24*time.Hour, func(ctx context.Context) error {
		generated, err := svc.GenerateUpcomingOrders(ctx, subscriptionHorizonDays)
		if err != nil {
			return err
		}
		if generated > 0 {
			slog.Info("generated subscription orders", "count", generated)
		}
		return nil
	})
}

// RegisterAutoPlanJob runs a scheduled optimization for every tenant that
// has pending orders. A tenant already mid-run is skipped, not failed.
func RegisterAutoPlanJob(s *Scheduler, orderRepo order.OrderRepository, planner planning.PlanningService) {
	s.AddJob("nightly-auto-plan", 24*time.Hour, func(ctx context.Context) error {
		userIDs, err := orderRepo.ListUserIDsWithPendingOrders(ctx)
		if err != nil {
			return err
		}

		for _, userID := range userIDs {
			result, err := planner.Optimize(ctx, userID, planning.OptimizeRequest{}, planning.TriggerScheduled)
			if err != nil {
				if errors.Is(err, planning.ErrRunInProgress) {
					slog.Info("auto-plan skipped, run in progress", "user_id", userID)
					continue
				}
				slog.Error("auto-plan failed", "user_id", userID, "error", err)
				continue
			}
			slog.Info("auto-plan completed",
				"user_id", userID,
				"assigned", result.OrdersAssigned,
				"routes", result.RoutesCreated)
		}
		return nil
	})
}
