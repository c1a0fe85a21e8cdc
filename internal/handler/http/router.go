package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fensterhq/fieldservice-backend-go/internal/handler/http/middleware"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/jwt"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/metrics"
)

type Handlers struct {
	Auth         AuthHandler
	Employee     EmployeeHandler
	Order        OrderHandler
	Schedule     ScheduleHandler
	Route        RouteHandler
	Planning     PlanningHandler
	Subscription SubscriptionHandler
}

func NewRouter(jwtService jwt.Service, frontendURL string, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "fieldservice-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))
	r.Use(middleware.Metrics)

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)

			r.Route("/login", func(r chi.Router) {
				r.Post("/", h.Auth.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", h.Auth.GoogleLogin)
				})
			})
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", h.Auth.GoogleCallback)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.ListEmployees)
				r.Post("/", h.Employee.CreateEmployee)
				r.Get("/{id}", h.Employee.GetEmployee)
				r.Put("/{id}", h.Employee.UpdateEmployee)
				r.Delete("/{id}", h.Employee.DeleteEmployee)

				r.Route("/{employeeID}/schedules", func(r chi.Router) {
					r.Get("/", h.Schedule.ListSchedules)
					r.Put("/", h.Schedule.UpsertSchedule)
					r.Delete("/{dayOfWeek}", h.Schedule.DeleteSchedule)
				})
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", h.Order.ListOrders)
				r.Post("/", h.Order.CreateOrder)
				r.Get("/{id}", h.Order.GetOrder)
				r.Put("/{id}", h.Order.UpdateOrder)
				r.Delete("/{id}", h.Order.DeleteOrder)
			})

			r.Route("/routes", func(r chi.Router) {
				r.Get("/", h.Route.ListRoutes)
				r.Get("/{id}", h.Route.GetRoute)
				r.Delete("/{id}", h.Route.DeleteRoute)
			})

			r.Route("/planning", func(r chi.Router) {
				r.Post("/optimize", h.Planning.Optimize)
				r.Route("/runs", func(r chi.Router) {
					r.Get("/", h.Planning.ListRuns)
					r.Get("/{id}", h.Planning.GetRun)
				})
			})

			r.Route("/subscriptions", func(r chi.Router) {
				r.Get("/", h.Subscription.ListSubscriptions)
				r.Post("/", h.Subscription.CreateSubscription)
				r.Get("/{id}", h.Subscription.GetSubscription)
				r.Put("/{id}", h.Subscription.UpdateSubscription)
				r.Delete("/{id}", h.Subscription.DeleteSubscription)
			})
		})
	})
	return r
}
