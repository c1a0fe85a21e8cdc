package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fensterhq/fieldservice-backend-go/internal/domain/order"
	"github.com/fensterhq/fieldservice-backend-go/internal/handler/http/middleware"
	"github.com/fensterhq/fieldservice-backend-go/internal/handler/http/response"
)

type OrderHandler interface {
	ListOrders(w http.ResponseWriter, r *http.Request)
	GetOrder(w http.ResponseWriter, r *http.Request)
	CreateOrder(w http.ResponseWriter, r *http.Request)
	UpdateOrder(w http.ResponseWriter, r *http.Request)
	DeleteOrder(w http.ResponseWriter, r *http.Request)
}

type orderHandlerImpl struct {
	orderService order.OrderService
}

func NewOrderHandler(orderService order.OrderService) OrderHandler {
	return &orderHandlerImpl{orderService: orderService}
}

// ListOrders implements OrderHandler
func (h *orderHandlerImpl) ListOrders(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	filter := order.OrderFilter{Page: page, Limit: limit}
	if status := r.URL.Query().Get("status"); status != "" {
		s := order.Status(status)
		filter.Status = &s
	}
	if priority := r.URL.Query().Get("priority"); priority != "" {
		p := order.Priority(priority)
		filter.Priority = &p
	}
	if empID := r.URL.Query().Get("assigned_employee_id"); empID != "" {
		filter.AssignedEmployeeID = &empID
	}
	if from := r.URL.Query().Get("scheduled_from"); from != "" {
		filter.ScheduledDateFrom = &from
	}
	if to := r.URL.Query().Get("scheduled_to"); to != "" {
		filter.ScheduledDateTo = &to
	}
	filter.Unscheduled = r.URL.Query().Get("unscheduled") == "true"

	orders, total, err := h.orderService.List(r.Context(), middleware.UserID(r), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, orders, listMeta(page, limit, total))
}

// GetOrder implements OrderHandler
func (h *orderHandlerImpl) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Order ID is required", nil)
		return
	}

	o, err := h.orderService.GetByID(r.Context(), middleware.UserID(r), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, o)
}

// CreateOrder implements OrderHandler
func (h *orderHandlerImpl) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req order.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	o, err := h.orderService.Create(r.Context(), middleware.UserID(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Order created", o)
}

// UpdateOrder implements OrderHandler
func (h *orderHandlerImpl) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Order ID is required", nil)
		return
	}

	var req order.UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	o, err := h.orderService.Update(r.Context(), middleware.UserID(r), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Order updated", o)
}

// DeleteOrder implements OrderHandler
func (h *orderHandlerImpl) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Order ID is required", nil)
		return
	}

	if err := h.orderService.Delete(r.Context(), middleware.UserID(r), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Order deleted", nil)
}
