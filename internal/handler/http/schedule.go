package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fensterhq/fieldservice-backend-go/internal/domain/schedule"
	"github.com/fensterhq/fieldservice-backend-go/internal/handler/http/middleware"
	"github.com/fensterhq/fieldservice-backend-go/internal/handler/http/response"
)

type ScheduleHandler interface {
	ListSchedules(w http.ResponseWriter, r *http.Request)
	UpsertSchedule(w http.ResponseWriter, r *http.Request)
	DeleteSchedule(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{scheduleService: scheduleService}
}

// ListSchedules implements ScheduleHandler
func (h *scheduleHandlerImpl) ListSchedules(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	schedules, err := h.scheduleService.ListByEmployee(r.Context(), middleware.UserID(r), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, schedules)
}

// UpsertSchedule implements ScheduleHandler
func (h *scheduleHandlerImpl) UpsertSchedule(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	var req schedule.UpsertScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	ws, err := h.scheduleService.Upsert(r.Context(), middleware.UserID(r), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work schedule saved", ws)
}

// DeleteSchedule implements ScheduleHandler
func (h *scheduleHandlerImpl) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	dayOfWeek, err := strconv.Atoi(chi.URLParam(r, "dayOfWeek"))
	if employeeID == "" || err != nil {
		response.BadRequest(w, "Employee ID and day of week are required", nil)
		return
	}

	if err := h.scheduleService.Delete(r.Context(), middleware.UserID(r), employeeID, dayOfWeek); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work schedule removed", nil)
}
