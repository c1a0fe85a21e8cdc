package route

import (
	"context"

	"github.com/fensterhq/fieldservice-backend-go/internal/domain/route"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/database"
)

type RouteServiceImpl struct {
	db *database.DB
	route.RouteRepository
}

func NewRouteService(db *database.DB, routeRepository route.RouteRepository) route.RouteService {
	return &RouteServiceImpl{
		db:              db,
		RouteRepository: routeRepository,
	}
}

// GetByID implements route.RouteService.
func (s *RouteServiceImpl) GetByID(ctx context.Context, userID, id string) (*route.RouteWithStops, error) {
	return s.RouteRepository.GetByID(ctx, userID, id)
}

// List implements route.RouteService.
func (s *RouteServiceImpl) List(ctx context.Context, userID string, filter route.RouteFilter) ([]route.Route, int, error) {
	return s.RouteRepository.List(ctx, userID, filter)
}

// Delete implements route.RouteService.
func (s *RouteServiceImpl) Delete(ctx context.Context, userID, id string) error {
	return s.RouteRepository.Delete(ctx, userID, id)
}
