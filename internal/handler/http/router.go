package http

import (
	"io"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/attendance-ledger/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-ledger/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type RouterConfig struct {
	AppName        string
	Version        string
	Env            string
	LogLevel       slog.Level
	LogOutput      io.Writer
	AllowedOrigins []string
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, authHandler AuthHandler, userHandler UserHandler, ledgerHandler LedgerHandler, dashboardHandler DashboardHandler, employeeDashboardHandler EmployeeDashboardHandler) *chi.Mux {
	r := chi.NewRouter()

	out := cfg.LogOutput
	if out == nil {
		out = os.Stdout
	}
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "development")
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.AppName),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(middleware.Verifier(JWTService))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)

			// Employee self-service
			r.Route("/my", func(r chi.Router) {
				r.Use(middleware.EmployeeScoped)
				r.Get("/attendance", employeeDashboardHandler.GetMyAttendance)
				r.Get("/attendance/export", employeeDashboardHandler.ExportMyAttendance)
				r.Get("/summary", employeeDashboardHandler.GetMySummary)
				r.Get("/profile", employeeDashboardHandler.GetMyProfile)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/users", func(r chi.Router) {
					r.Get("/", userHandler.List)
					r.Post("/", userHandler.Create)
				})

				r.Route("/ledger", func(r chi.Router) {
					r.Get("/", ledgerHandler.List)
					r.Get("/export", ledgerHandler.Export)
					r.Post("/reload", ledgerHandler.Reload)
				})

				r.Route("/dashboard", func(r chi.Router) {
					r.Get("/", dashboardHandler.GetOverview)
					r.Get("/departments", dashboardHandler.ListDepartments)
					r.Get("/departments/{name}", dashboardHandler.GetDepartment)
					r.Get("/locations", dashboardHandler.ListLocations)
					r.Get("/locations/{name}", dashboardHandler.GetLocation)
					r.Get("/employees", dashboardHandler.ListEmployees)
					r.Get("/employees/{id}", dashboardHandler.GetEmployee)
				})
			})
		})
	})
	return r
}
