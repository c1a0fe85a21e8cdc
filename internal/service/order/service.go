package order

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/fensterhq/fieldservice-backend-go/internal/domain/order"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/database"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/geocode"
)

type OrderServiceImpl struct {
	db *database.DB
	order.OrderRepository
	geocoder geocode.Geocoder
}

func NewOrderService(db *database.DB, orderRepository order.OrderRepository, geocoder geocode.Geocoder) order.OrderService {
	return &OrderServiceImpl{
		db:              db,
		OrderRepository: orderRepository,
		geocoder:        geocoder,
	}
}

// Create implements order.OrderService. Addresses without coordinates are
// geocoded best-effort; a failed lookup does not block creation, the
// planner retries later.
func (s *OrderServiceImpl) Create(ctx context.Context, userID string, req order.CreateOrderRequest) (*order.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = order.PriorityNormal
	}
	price := decimal.Zero
	if req.Price != nil {
		price = *req.Price
	}
	duration := 60
	if req.EstimatedDuration != nil {
		duration = *req.EstimatedDuration
	}

	o := &order.Order{
		UserID:            userID,
		CustomerName:      req.CustomerName,
		Description:       req.Description,
		ServiceType:       req.ServiceType,
		Address:           req.Address,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		Priority:          priority,
		Status:            order.StatusPending,
		Price:             price,
		EstimatedDuration: duration,
		ScheduledDate:     req.ScheduledDate,
		ScheduledTime:     req.ScheduledTime,
		SubscriptionID:    req.SubscriptionID,
	}

	if o.Latitude == nil && s.geocoder != nil {
		if point, err := s.geocoder.Geocode(ctx, o.Address); err == nil {
			o.Latitude = &point.Latitude
			o.Longitude = &point.Longitude
		} else if !errors.Is(err, geocode.ErrNotFound) {
			slog.Warn("geocoding failed on order creation", "error", err)
		}
	}

	if err := s.OrderRepository.Create(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

// GetByID implements order.OrderService.
func (s *OrderServiceImpl) GetByID(ctx context.Context, userID, id string) (*order.Order, error) {
	return s.OrderRepository.GetByID(ctx, userID, id)
}

// List implements order.OrderService.
func (s *OrderServiceImpl) List(ctx context.Context, userID string, filter order.OrderFilter) ([]order.Order, int, error) {
	return s.OrderRepository.List(ctx, userID, filter)
}

// Update implements order.OrderService. A human moving the assignment marks
// the order as manually edited, which shields it from future optimization
// runs.
func (s *OrderServiceImpl) Update(ctx context.Context, userID, id string, req order.UpdateOrderRequest) (*order.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	o, err := s.OrderRepository.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	addressChanged := false
	if req.CustomerName != nil {
		o.CustomerName = *req.CustomerName
	}
	if req.Description != nil {
		o.Description = req.Description
	}
	if req.ServiceType != nil {
		o.ServiceType = *req.ServiceType
	}
	if req.Address != nil && *req.Address != o.Address {
		o.Address = *req.Address
		addressChanged = true
	}
	if req.Latitude != nil {
		o.Latitude = req.Latitude
		addressChanged = false
	}
	if req.Longitude != nil {
		o.Longitude = req.Longitude
	}
	if req.Priority != nil {
		o.Priority = *req.Priority
	}
	if req.Status != nil {
		o.Status = *req.Status
	}
	if req.Price != nil {
		o.Price = *req.Price
	}
	if req.EstimatedDuration != nil {
		o.EstimatedDuration = *req.EstimatedDuration
	}

	if req.ReschedulesOrder() {
		if req.AssignedEmployeeID != nil {
			o.AssignedEmployeeID = nilIfEmpty(req.AssignedEmployeeID)
		}
		if req.ScheduledDate != nil {
			o.ScheduledDate = nilIfEmpty(req.ScheduledDate)
		}
		if req.ScheduledTime != nil {
			o.ScheduledTime = nilIfEmpty(req.ScheduledTime)
		}
		o.ManuallyEdited = true
		o.AIOptimized = false
		if o.HasCompleteSchedule() {
			o.Status = order.StatusScheduled
		}
	}

	if addressChanged && s.geocoder != nil {
		if point, err := s.geocoder.Geocode(ctx, o.Address); err == nil {
			o.Latitude = &point.Latitude
			o.Longitude = &point.Longitude
		} else {
			o.Latitude = nil
			o.Longitude = nil
			if !errors.Is(err, geocode.ErrNotFound) {
				slog.Warn("geocoding failed on order update", "order_id", o.ID, "error", err)
			}
		}
	}

	if err := s.OrderRepository.Update(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

// Delete implements order.OrderService.
func (s *OrderServiceImpl) Delete(ctx context.Context, userID, id string) error {
	return s.OrderRepository.Delete(ctx, userID, id)
}

func nilIfEmpty(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}
