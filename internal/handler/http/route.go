package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fensterhq/fieldservice-backend-go/internal/domain/route"
	"github.com/fensterhq/fieldservice-backend-go/internal/handler/http/middleware"
	"github.com/fensterhq/fieldservice-backend-go/internal/handler/http/response"
)

type RouteHandler interface {
	ListRoutes(w http.ResponseWriter, r *http.Request)
	GetRoute(w http.ResponseWriter, r *http.Request)
	DeleteRoute(w http.ResponseWriter, r *http.Request)
}

type routeHandlerImpl struct {
	routeService route.RouteService
}

func NewRouteHandler(routeService route.RouteService) RouteHandler {
	return &routeHandlerImpl{routeService: routeService}
}

// ListRoutes implements RouteHandler
func (h *routeHandlerImpl) ListRoutes(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	filter := route.RouteFilter{Page: page, Limit: limit}
	if empID := r.URL.Query().Get("employee_id"); empID != "" {
		filter.EmployeeID = &empID
	}
	if from := r.URL.Query().Get("date_from"); from != "" {
		filter.DateFrom = &from
	}
	if to := r.URL.Query().Get("date_to"); to != "" {
		filter.DateTo = &to
	}

	routes, total, err := h.routeService.List(r.Context(), middleware.UserID(r), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, routes, listMeta(page, limit, total))
}

// GetRoute implements RouteHandler
func (h *routeHandlerImpl) GetRoute(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Route ID is required", nil)
		return
	}

	rt, err := h.routeService.GetByID(r.Context(), middleware.UserID(r), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rt)
}

// DeleteRoute implements RouteHandler
func (h *routeHandlerImpl) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Route ID is required", nil)
		return
	}

	if err := h.routeService.Delete(r.Context(), middleware.UserID(r), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Route deleted", nil)
}
