package planning

import "context"

type RunRepository interface {
	Create(ctx context.Context, run *OptimizationRun) error
	Update(ctx context.Context, run *OptimizationRun) error
	GetByID(ctx context.Context, userID, id string) (*OptimizationRun, error)
	List(ctx context.Context, userID string, filter RunFilter) ([]OptimizationRun, int, error)
}
