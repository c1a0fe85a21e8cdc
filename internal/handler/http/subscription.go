package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fensterhq/fieldservice-backend-go/internal/domain/subscription"
	"github.com/fensterhq/fieldservice-backend-go/internal/handler/http/middleware"
	"github.com/fensterhq/fieldservice-backend-go/internal/handler/http/response"
)

type SubscriptionHandler interface {
	ListSubscriptions(w http.ResponseWriter, r *http.Request)
	GetSubscription(w http.ResponseWriter, r *http.Request)
	CreateSubscription(w http.ResponseWriter, r *http.Request)
	UpdateSubscription(w http.ResponseWriter, r *http.Request)
	DeleteSubscription(w http.ResponseWriter, r *http.Request)
}

type subscriptionHandlerImpl struct {
	subscriptionService subscription.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService subscription.SubscriptionService) SubscriptionHandler {
	return &subscriptionHandlerImpl{subscriptionService: subscriptionService}
}

// ListSubscriptions implements SubscriptionHandler
func (h *subscriptionHandlerImpl) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	filter := subscription.SubscriptionFilter{Page: page, Limit: limit}
	if status := r.URL.Query().Get("status"); status != "" {
		s := subscription.Status(status)
		filter.Status = &s
	}

	subs, total, err := h.subscriptionService.List(r.Context(), middleware.UserID(r), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, subs, listMeta(page, limit, total))
}

// GetSubscription implements SubscriptionHandler
func (h *subscriptionHandlerImpl) GetSubscription(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Subscription ID is required", nil)
		return
	}

	sub, err := h.subscriptionService.GetByID(r.Context(), middleware.UserID(r), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, sub)
}

// CreateSubscription implements SubscriptionHandler
func (h *subscriptionHandlerImpl) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	var req subscription.CreateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	sub, err := h.subscriptionService.Create(r.Context(), middleware.UserID(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Subscription created", sub)
}

// UpdateSubscription implements SubscriptionHandler
func (h *subscriptionHandlerImpl) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Subscription ID is required", nil)
		return
	}

	var req subscription.UpdateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	sub, err := h.subscriptionService.Update(r.Context(), middleware.UserID(r), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Subscription updated", sub)
}

// DeleteSubscription implements SubscriptionHandler
func (h *subscriptionHandlerImpl) DeleteSubscription(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Subscription ID is required", nil)
		return
	}

	if err := h.subscriptionService.Delete(r.Context(), middleware.UserID(r), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Subscription deleted", nil)
}
