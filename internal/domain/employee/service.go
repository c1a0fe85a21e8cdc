package employee

import "context"

type EmployeeService interface {
	Create(ctx context.Context, userID string, req CreateEmployeeRequest) (*Employee, error)
	GetByID(ctx context.Context, userID, id string) (*Employee, error)
	List(ctx context.Context, userID string, filter EmployeeFilter) ([]Employee, int, error)
	Update(ctx context.Context, userID, id string, req UpdateEmployeeRequest) (*Employee, error)
	Delete(ctx context.Context, userID, id string) error
}
