package route

import "context"

type RouteService interface {
	GetByID(ctx context.Context, userID, id string) (*RouteWithStops, error)
	List(ctx context.Context, userID string, filter RouteFilter) ([]Route, int, error)
	Delete(ctx context.Context, userID, id string) error
}
