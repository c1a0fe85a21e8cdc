package subscription

import "context"

type SubscriptionService interface {
	Create(ctx context.Context, userID string, req CreateSubscriptionRequest) (*Subscription, error)
	GetByID(ctx context.Context, userID, id string) (*Subscription, error)
	List(ctx context.Context, userID string, filter SubscriptionFilter) ([]Subscription, int, error)
	Update(ctx context.Context, userID, id string, req UpdateSubscriptionRequest) (*Subscription, error)
	Delete(ctx context.Context, userID, id string) error
	// GenerateUpcomingOrders creates pending orders for every active
	// subscription whose next due date falls on or before the horizon.
	GenerateUpcomingOrders(ctx context.Context, horizonDays int) (int, error)
}
