package order

import "context"

type OrderService interface {
	Create(ctx context.Context, userID string, req CreateOrderRequest) (*Order, error)
	GetByID(ctx context.Context, userID, id string) (*Order, error)
	List(ctx context.Context, userID string, filter OrderFilter) ([]Order, int, error)
	Update(ctx context.Context, userID, id string, req UpdateOrderRequest) (*Order, error)
	Delete(ctx context.Context, userID, id string) error
}
