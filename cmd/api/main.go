package main

import (
	"fmt"
	"net/http"

	"github.com/fensterhq/fieldservice-backend-go/internal/config"
	appHTTP "github.com/fensterhq/fieldservice-backend-go/internal/handler/http"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/cron"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/database"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/geocode"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/jwt"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/metrics"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/oauth"
	"github.com/fensterhq/fieldservice-backend-go/internal/repository/postgresql"
	authService "github.com/fensterhq/fieldservice-backend-go/internal/service/auth"
	employeeService "github.com/fensterhq/fieldservice-backend-go/internal/service/employee"
	orderService "github.com/fensterhq/fieldservice-backend-go/internal/service/order"
	planningService "github.com/fensterhq/fieldservice-backend-go/internal/service/planning"
	routeService "github.com/fensterhq/fieldservice-backend-go/internal/service/route"
	scheduleService "github.com/fensterhq/fieldservice-backend-go/internal/service/schedule"
	subscriptionService "github.com/fensterhq/fieldservice-backend-go/internal/service/subscription"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	metrics.RegisterDefault()

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	orderRepo := postgresql.NewOrderRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	routeRepo := postgresql.NewRouteRepository(db)
	runRepo := postgresql.NewRunRepository(db)
	subscriptionRepo := postgresql.NewSubscriptionRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	geocoder := geocode.NewDAWAClient(cfg.Geocoding.BaseURL, cfg.Geocoding.MaxAttempts)

	authSvc := authService.NewAuthService(db, userRepo, refreshTokenRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo)
	orderSvc := orderService.NewOrderService(db, orderRepo, geocoder)
	scheduleSvc := scheduleService.NewScheduleService(db, scheduleRepo, employeeRepo)
	routeSvc := routeService.NewRouteService(db, routeRepo)
	planningSvc := planningService.NewPlanningService(db, cfg.Planning, runRepo, orderRepo, employeeRepo, scheduleRepo, routeRepo, geocoder)
	subscriptionSvc := subscriptionService.NewSubscriptionService(db, subscriptionRepo, orderRepo)

	scheduler := cron.NewScheduler()
	cron.RegisterSubscriptionJob(scheduler, subscriptionSvc)
	cron.RegisterAutoPlanJob(scheduler, orderRepo, planningSvc)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(jwtService, cfg.App.FrontendURL, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authSvc, jwtService, googleService),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Order:        appHTTP.NewOrderHandler(orderSvc),
		Schedule:     appHTTP.NewScheduleHandler(scheduleSvc),
		Route:        appHTTP.NewRouteHandler(routeSvc),
		Planning:     appHTTP.NewPlanningHandler(planningSvc),
		Subscription: appHTTP.NewSubscriptionHandler(subscriptionSvc),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
