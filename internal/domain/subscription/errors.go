package subscription

import "errors"

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrInvalidInterval      = errors.New("interval weeks must be positive")
)
