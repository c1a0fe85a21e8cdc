package planning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/fensterhq/fieldservice-backend-go/internal/config"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/employee"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/order"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/planning"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/route"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/schedule"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/database"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/geocode"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/metrics"
	"github.com/fensterhq/fieldservice-backend-go/internal/repository/postgresql"
)

type planningServiceImpl struct {
	db           *database.DB
	cfg          config.PlanningConfig
	runRepo      planning.RunRepository
	orderRepo    order.OrderRepository
	employeeRepo employee.EmployeeRepository
	scheduleRepo schedule.ScheduleRepository
	routeRepo    route.RouteRepository
	geocoder     geocode.Geocoder
	guard        *runGuard
	now          func() time.Time
}

func NewPlanningService(
	db *database.DB,
	cfg config.PlanningConfig,
	runRepo planning.RunRepository,
	orderRepo order.OrderRepository,
	employeeRepo employee.EmployeeRepository,
	scheduleRepo schedule.ScheduleRepository,
	routeRepo route.RouteRepository,
	geocoder geocode.Geocoder,
) planning.PlanningService {
	return &planningServiceImpl{
		db:           db,
		cfg:          cfg,
		runRepo:      runRepo,
		orderRepo:    orderRepo,
		employeeRepo: employeeRepo,
		scheduleRepo: scheduleRepo,
		routeRepo:    routeRepo,
		geocoder:     geocoder,
		guard:        newRunGuard(),
		now:          time.Now,
	}
}

// Optimize implements planning.PlanningService.
func (s *planningServiceImpl) Optimize(ctx context.Context, userID string, req planning.OptimizeRequest, trigger planning.RunTrigger) (*planning.OptimizeResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if !s.guard.acquire(userID) {
		return nil, planning.ErrRunInProgress
	}
	defer s.guard.release(userID)

	started := s.now()
	run := &planning.OptimizationRun{
		UserID:  userID,
		Status:  planning.RunStatusRunning,
		Trigger: trigger,
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("record optimization run: %w", err)
	}

	result, err := s.optimize(ctx, userID, req, run)
	if err != nil {
		metrics.PlanningRuns.WithLabelValues(string(trigger), "failed").Inc()
		msg := err.Error()
		run.Status = planning.RunStatusFailed
		run.ErrorMessage = &msg
		if updErr := s.runRepo.Update(ctx, run); updErr != nil {
			slog.Error("failed to mark optimization run as failed",
				"run_id", run.ID, "error", updErr)
		}
		return nil, err
	}

	run.Status = planning.RunStatusCompleted
	run.OrdersConsidered = result.OrdersConsidered
	run.OrdersAssigned = result.OrdersAssigned
	run.OrdersDeferred = result.OrdersDeferred
	run.RoutesCreated = result.RoutesCreated
	run.TotalDistanceKm = result.TotalDistanceKm
	run.EfficiencyScore = result.EfficiencyScore
	if err := s.runRepo.Update(ctx, run); err != nil {
		slog.Error("failed to finalize optimization run", "run_id", run.ID, "error", err)
	}

	metrics.PlanningRuns.WithLabelValues(string(trigger), "completed").Inc()
	metrics.PlanningRunDuration.Observe(s.now().Sub(started).Seconds())
	metrics.OrdersOptimized.Add(float64(result.OrdersAssigned))

	result.RunID = run.ID
	return result, nil
}

func (s *planningServiceImpl) optimize(ctx context.Context, userID string, req planning.OptimizeRequest, run *planning.OptimizationRun) (*planning.OptimizeResult, error) {
	orders, targeted, err := s.loadCandidates(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}
	if len(employees) == 0 {
		slog.Info("optimization run found no active employees", "user_id", userID)
		return &planning.OptimizeResult{
			RunID:            run.ID,
			OrdersConsidered: len(orders),
			OrdersDeferred:   len(orders),
			Message:          "no active employees, nothing was scheduled",
		}, nil
	}

	employeeIDs := make([]string, 0, len(employees))
	for _, emp := range employees {
		employeeIDs = append(employeeIDs, emp.ID)
	}
	schedules, err := s.scheduleRepo.ListByEmployees(ctx, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("load work schedules: %w", err)
	}

	s.geocodeMissing(ctx, userID, orders)

	part := partitionOrders(orders, targeted, req.ForceOptimize)

	// The horizon opens on the current week's Monday so subscription
	// cadence and remaining weekdays stay reachable; already worked days
	// are closed off below.
	weekStart := currentMonday(s.now())
	if req.WeekStart != "" {
		if parsed, perr := time.Parse(dateLayout, req.WeekStart); perr == nil {
			weekStart = parsed
		}
	}
	h := buildHorizon(weekStart, req.WeeksAhead+1)

	ledger := newCapacityLedger(s.cfg, employees, schedules, h, s.now().Format(dateLayout))
	existing, err := s.orderRepo.ListScheduledBetween(ctx, userID, h.firstDate(), h.lastDate())
	if err != nil {
		return nil, fmt.Errorf("load scheduled orders: %w", err)
	}
	ledger.seedExisting(filterProtected(existing, part.plannable), s.cfg.DefaultDurationMinutes)

	assigned := assignOrders(s.cfg, part.plannable, employees, ledger, h)

	result := &planning.OptimizeResult{
		RunID:            run.ID,
		OrdersConsidered: len(orders),
		Skipped:          append(part.skipped, assigned.skipped...),
	}

	empByID := make(map[string]employee.Employee, len(employees))
	for _, emp := range employees {
		empByID[emp.ID] = emp
	}

	routeScores := make([]int, 0, len(assigned.buckets))
	minutesByEmployee := make(map[string]int)

	// Deterministic bucket order keeps reruns and logs stable.
	keys := make([]dayKey, 0, len(assigned.buckets))
	for key := range assigned.buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].date != keys[j].date {
			return keys[i].date < keys[j].date
		}
		return keys[i].employeeID < keys[j].employeeID
	})

	for i := 0; i < len(keys); i++ {
		key := keys[i]
		bucket := assigned.buckets[key]
		emp := empByID[key.employeeID]

		window, ok := ledger.window(key.employeeID, key.date)
		if !ok {
			continue
		}

		home, hasHome := emp.HomePoint()
		stops := sequenceDay(s.cfg, home, hasHome, bucket)
		timed, overflow := allocateTimeSlots(s.cfg, window, stops)

		// Stops that do not fit the window move to the employee's next
		// open day; their minutes go back to this one first.
		for _, o := range overflow {
			duration := o.order.DurationMinutes(s.cfg.DefaultDurationMinutes)
			ledger.release(key.employeeID, key.date, duration)
			if next, found := nextOpenDay(ledger, h, key, duration); found {
				assigned.buckets[next] = append(assigned.buckets[next], o.order)
				keys = insertDayKey(keys, i, next)
				continue
			}
			result.Skipped = append(result.Skipped, planning.SkippedOrder{
				OrderID: o.order.ID,
				Reason:  skipReasonNoTimeSlot,
			})
			result.OrdersDeferred++
		}
		if len(timed) == 0 {
			continue
		}

		summary, err := s.materializeRoute(ctx, userID, run.ID, &emp, key.date, timed)
		if err != nil {
			slog.Error("route could not be saved, skipping day",
				"employee_id", key.employeeID, "date", key.date, "error", err)
			for _, t := range timed {
				ledger.release(key.employeeID, key.date, t.order.DurationMinutes(s.cfg.DefaultDurationMinutes))
				result.Skipped = append(result.Skipped, planning.SkippedOrder{
					OrderID: t.order.ID,
					Reason:  skipReasonPersistFailed,
				})
				result.OrdersDeferred++
			}
			continue
		}

		result.Routes = append(result.Routes, *summary)
		result.RoutesCreated++
		result.OrdersAssigned += len(timed)
		result.TotalDistanceKm += summary.TotalDistanceKm
		result.TotalRevenue = result.TotalRevenue.Add(summary.TotalRevenue)
		routeScores = append(routeScores, summary.EfficiencyScore)
		for _, t := range timed {
			minutesByEmployee[key.employeeID] += t.order.DurationMinutes(s.cfg.DefaultDurationMinutes)
		}
	}

	result.OrdersDeferred += len(assigned.skipped)
	result.EfficiencyScore = runScore(s.cfg, routeScores, minutesByEmployee)
	result.Message = fmt.Sprintf("assigned %d of %d orders across %d routes",
		result.OrdersAssigned, result.OrdersConsidered, result.RoutesCreated)

	return result, nil
}

// loadCandidates fetches the orders a run may consider. Explicit targeting
// narrows the set and marks those IDs so force can unlock manual edits.
func (s *planningServiceImpl) loadCandidates(ctx context.Context, userID string, req planning.OptimizeRequest) ([]order.Order, map[string]bool, error) {
	targeted := make(map[string]bool, len(req.OrderIDs))
	for _, id := range req.OrderIDs {
		targeted[id] = true
	}

	if len(req.OrderIDs) > 0 {
		orders, err := s.orderRepo.GetByIDs(ctx, userID, req.OrderIDs)
		if err != nil {
			return nil, nil, fmt.Errorf("load targeted orders: %w", err)
		}
		return orders, targeted, nil
	}

	orders, err := s.orderRepo.ListPlannable(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("load plannable orders: %w", err)
	}
	return orders, targeted, nil
}

// geocodeMissing resolves coordinates for orders that lack them. Failures
// are logged and the order proceeds without a position; distance terms
// treat it as zero.
func (s *planningServiceImpl) geocodeMissing(ctx context.Context, userID string, orders []order.Order) {
	if s.geocoder == nil {
		return
	}

	for i := range orders {
		if _, ok := orders[i].Coordinates(); ok {
			continue
		}

		point, err := s.geocoder.Geocode(ctx, orders[i].Address)
		if err != nil {
			metrics.GeocodeLookups.WithLabelValues("failure").Inc()
			if !errors.Is(err, geocode.ErrNotFound) {
				slog.Warn("geocoding failed",
					"order_id", orders[i].ID, "error", err)
			}
			continue
		}

		metrics.GeocodeLookups.WithLabelValues("success").Inc()
		orders[i].Latitude = &point.Latitude
		orders[i].Longitude = &point.Longitude
		if err := s.orderRepo.UpdateCoordinates(ctx, userID, orders[i].ID, point.Latitude, point.Longitude); err != nil {
			slog.Warn("failed to persist geocoded coordinates",
				"order_id", orders[i].ID, "error", err)
		}
	}
}

// materializeRoute writes one employee-day route and its assignments in a
// single transaction, so a crash never leaves a half-applied day.
func (s *planningServiceImpl) materializeRoute(ctx context.Context, userID, runID string, emp *employee.Employee, date string, timed []timedStop) (*planning.RouteSummary, error) {
	durationMin := 0
	revenue := decimal.Zero
	orderIDs := make([]string, 0, len(timed))
	for _, t := range timed {
		durationMin += t.endMin - t.startMin
		revenue = revenue.Add(t.order.Price)
		orderIDs = append(orderIDs, t.order.ID)
	}
	home, hasHome := emp.HomePoint()
	distance := routeDistanceKm(timed, home, hasHome)
	score := routeScore(s.cfg, timed)

	rt := &route.Route{
		UserID:            userID,
		EmployeeID:        emp.ID,
		Name:              fmt.Sprintf("%s - %s", emp.Name, date),
		RouteDate:         date,
		TotalDistanceKm:   distance,
		TotalDurationMin:  durationMin,
		TotalRevenue:      revenue,
		StopCount:         len(timed),
		EfficiencyScore:   score,
		OptimizationRunID: &runID,
	}

	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.routeRepo.DeleteByRunScope(txCtx, userID, orderIDs); err != nil {
			return err
		}
		if err := s.routeRepo.Create(txCtx, rt); err != nil {
			return err
		}
		for seq, t := range timed {
			assignment := order.Assignment{
				OrderID:          t.order.ID,
				EmployeeID:       emp.ID,
				ScheduledDate:    date,
				ScheduledTime:    t.clockOf(),
				SequenceNumber:   seq + 1,
				RouteID:          rt.ID,
				DistanceKmScaled: t.legKm,
			}
			if err := s.orderRepo.ApplyAssignment(txCtx, userID, assignment); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("materialize route for %s on %s: %w", emp.ID, date, err)
	}

	return &planning.RouteSummary{
		RouteID:         rt.ID,
		EmployeeID:      emp.ID,
		EmployeeName:    emp.Name,
		RouteDate:       date,
		StopCount:       len(timed),
		TotalDistanceKm: distance,
		TotalRevenue:    revenue,
		EfficiencyScore: score,
	}, nil
}

// filterProtected drops the orders about to be replanned from the seed set
// so their old slots do not double-count against capacity.
func filterProtected(existing, plannable []order.Order) []order.Order {
	moving := make(map[string]bool, len(plannable))
	for _, o := range plannable {
		moving[o.ID] = true
	}

	kept := existing[:0]
	for _, o := range existing {
		if !moving[o.ID] {
			kept = append(kept, o)
		}
	}
	return kept
}

// GetRun implements planning.PlanningService.
func (s *planningServiceImpl) GetRun(ctx context.Context, userID, id string) (*planning.OptimizationRun, error) {
	return s.runRepo.GetByID(ctx, userID, id)
}

// ListRuns implements planning.PlanningService.
func (s *planningServiceImpl) ListRuns(ctx context.Context, userID string, filter planning.RunFilter) ([]planning.OptimizationRun, int, error) {
	return s.runRepo.List(ctx, userID, filter)
}
