package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, emp *Employee) error
	GetByID(ctx context.Context, userID, id string) (*Employee, error)
	List(ctx context.Context, userID string, filter EmployeeFilter) ([]Employee, int, error)
	ListActive(ctx context.Context, userID string) ([]Employee, error)
	Update(ctx context.Context, emp *Employee) error
	Delete(ctx context.Context, userID, id string) error
}
