package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/cmlabs-hris/attendance-ledger/internal/config"
	appHTTP "github.com/cmlabs-hris/attendance-ledger/internal/handler/http"
	"github.com/cmlabs-hris/attendance-ledger/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-ledger/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-ledger/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-ledger/internal/repository/postgresql"
	serviceAuth "github.com/cmlabs-hris/attendance-ledger/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/attendance-ledger/internal/service/dashboard"
	employeeDashboardService "github.com/cmlabs-hris/attendance-ledger/internal/service/employee_dashboard"
	ledgerService "github.com/cmlabs-hris/attendance-ledger/internal/service/ledger"
	serviceUser "github.com/cmlabs-hris/attendance-ledger/internal/service/user"
)

const (
	appName    = "attendance-ledger"
	appVersion = "v1.0.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	if err := userRepo.EnsureSchema(ctx); err != nil {
		slog.Error("Error preparing credential store", "error", err)
		os.Exit(1)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	userService := serviceUser.NewUserService(db, userRepo)

	if cfg.Admin.Password != "" {
		if err := userService.SeedAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
			slog.Error("Error seeding admin user", "error", err)
			os.Exit(1)
		}
	}

	location, err := cfg.Location()
	if err != nil {
		slog.Error("Error loading ledger timezone", "error", err)
		os.Exit(1)
	}
	loader := ledgerService.NewFileLoader(cfg.Ledger.RosterPath, cfg.Ledger.SchedulePath, cfg.Ledger.AttendancePath, location)
	ledgerSvc := ledgerService.NewLedgerService(loader, cfg.Ledger.Pairing)

	// Serve even when the first build fails; ledger routes answer 503 until a reload succeeds.
	if summary, err := ledgerSvc.Reload(ctx); err != nil {
		slog.Error("Initial ledger build failed", "error", err)
	} else {
		slog.Info("Ledger built",
			"employees", summary.Employees,
			"shifts", summary.Shifts,
			"events", summary.Events,
			"rows", summary.Rows,
			"duration_anomalies", summary.Anomalies,
		)
	}

	scheduler := cron.NewScheduler()
	cron.NewLedgerJobs(ledgerSvc, cfg.Ledger.RefreshInterval).RegisterJobs(scheduler)
	scheduler.Start(context.Background())
	defer scheduler.Stop()

	dashboardSvc := dashboardService.NewDashboardService(ledgerSvc)
	empDashboardSvc := employeeDashboardService.NewEmployeeDashboardService(ledgerSvc)

	authHandler := appHTTP.NewAuthHandler(authService)
	userHandler := appHTTP.NewUserHandler(userService)
	ledgerHandler := appHTTP.NewLedgerHandler(ledgerSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)
	empDashboardHandler := appHTTP.NewEmployeeDashboardHandler(empDashboardSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AppName:        appName,
			Version:        appVersion,
			Env:            cfg.App.Env,
			LogLevel:       cfg.SlogLevel(),
			LogOutput:      os.Stdout,
			AllowedOrigins: cfg.App.CORSOrigins,
		},
		JWTService,
		authHandler,
		userHandler,
		ledgerHandler,
		dashboardHandler,
		empDashboardHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("Server running", "addr", "http://localhost"+port)
	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("Server error", "error", err)
	}
}
