package order

import "errors"

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidStatus   = errors.New("invalid status")
)
