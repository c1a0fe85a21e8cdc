package subscription

import "context"

type SubscriptionRepository interface {
	Create(ctx context.Context, s *Subscription) error
	GetByID(ctx context.Context, userID, id string) (*Subscription, error)
	List(ctx context.Context, userID string, filter SubscriptionFilter) ([]Subscription, int, error)
	ListDue(ctx context.Context, beforeDate string) ([]Subscription, error)
	Update(ctx context.Context, s *Subscription) error
	Delete(ctx context.Context, userID, id string) error
}
