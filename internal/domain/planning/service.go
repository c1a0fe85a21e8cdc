package planning

import "context"

type PlanningService interface {
	Optimize(ctx context.Context, userID string, req OptimizeRequest, trigger RunTrigger) (*OptimizeResult, error)
	GetRun(ctx context.Context, userID, id string) (*OptimizationRun, error)
	ListRuns(ctx context.Context, userID string, filter RunFilter) ([]OptimizationRun, int, error)
}
