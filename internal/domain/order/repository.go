package order

import "context"

type OrderRepository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, userID, id string) (*Order, error)
	GetByIDs(ctx context.Context, userID string, ids []string) ([]Order, error)
	List(ctx context.Context, userID string, filter OrderFilter) ([]Order, int, error)
	ListPlannable(ctx context.Context, userID string) ([]Order, error)
	ListUserIDsWithPendingOrders(ctx context.Context) ([]string, error)
	ListScheduledBetween(ctx context.Context, userID, fromDate, toDate string) ([]Order, error)
	Update(ctx context.Context, o *Order) error
	UpdateCoordinates(ctx context.Context, userID, id string, lat, lon float64) error
	ApplyAssignment(ctx context.Context, userID string, a Assignment) error
	Delete(ctx context.Context, userID, id string) error
}
