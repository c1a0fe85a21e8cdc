package response

import (
	"errors"
	"net/http"

	"github.com/fensterhq/fieldservice-backend-go/internal/domain/auth"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/employee"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/order"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/planning"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/route"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/schedule"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/subscription"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/user"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		BadRequest(w, "Employee is inactive", nil)

	// Order domain errors
	case errors.Is(err, order.ErrOrderNotFound):
		NotFound(w, "Order not found")
	case errors.Is(err, order.ErrInvalidPriority), errors.Is(err, order.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)

	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Work schedule not found")
	case errors.Is(err, schedule.ErrInvalidTimeWindow):
		BadRequest(w, err.Error(), nil)

	// Route domain errors
	case errors.Is(err, route.ErrRouteNotFound):
		NotFound(w, "Route not found")

	// Planning domain errors
	case errors.Is(err, planning.ErrRunInProgress):
		Conflict(w, "An optimization run is already in progress")
	case errors.Is(err, planning.ErrRunNotFound):
		NotFound(w, "Optimization run not found")

	// Subscription domain errors
	case errors.Is(err, subscription.ErrSubscriptionNotFound):
		NotFound(w, "Subscription not found")
	case errors.Is(err, subscription.ErrInvalidInterval):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
