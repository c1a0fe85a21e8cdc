package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fensterhq/fieldservice-backend-go/internal/domain/planning"
	"github.com/fensterhq/fieldservice-backend-go/internal/handler/http/middleware"
	"github.com/fensterhq/fieldservice-backend-go/internal/handler/http/response"
)

type PlanningHandler interface {
	Optimize(w http.ResponseWriter, r *http.Request)
	GetRun(w http.ResponseWriter, r *http.Request)
	ListRuns(w http.ResponseWriter, r *http.Request)
}

type planningHandlerImpl struct {
	planningService planning.PlanningService
}

func NewPlanningHandler(planningService planning.PlanningService) PlanningHandler {
	return &planningHandlerImpl{planningService: planningService}
}

// Optimize implements PlanningHandler. An empty body runs a full plan with
// defaults.
func (h *planningHandlerImpl) Optimize(w http.ResponseWriter, r *http.Request) {
	var req planning.OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.planningService.Optimize(r.Context(), middleware.UserID(r), req, planning.TriggerManual)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result)
}

// GetRun implements PlanningHandler
func (h *planningHandlerImpl) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	run, err := h.planningService.GetRun(r.Context(), middleware.UserID(r), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, run)
}

// ListRuns implements PlanningHandler
func (h *planningHandlerImpl) ListRuns(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	filter := planning.RunFilter{Page: page, Limit: limit}
	if status := r.URL.Query().Get("status"); status != "" {
		s := planning.RunStatus(status)
		filter.Status = &s
	}

	runs, total, err := h.planningService.ListRuns(r.Context(), middleware.UserID(r), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, runs, listMeta(page, limit, total))
}
