package route

import "context"

type RouteRepository interface {
	Create(ctx context.Context, r *Route) error
	GetByID(ctx context.Context, userID, id string) (*RouteWithStops, error)
	List(ctx context.Context, userID string, filter RouteFilter) ([]Route, int, error)
	DeleteByRunScope(ctx context.Context, userID string, orderIDs []string) error
	Delete(ctx context.Context, userID, id string) error
}
