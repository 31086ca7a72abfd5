package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"talenthub/internal/domain/audit"
	"talenthub/internal/domain/directory"
	"talenthub/internal/domain/dsr"
	"talenthub/internal/domain/reports"
	"talenthub/internal/platform/config"
	"talenthub/internal/platform/db"
	"talenthub/internal/platform/metrics"
	adminhandler "talenthub/internal/transport/http/handlers/admin"
	authhandler "talenthub/internal/transport/http/handlers/auth"
	dsrhandler "talenthub/internal/transport/http/handlers/dsr"
	employeehandler "talenthub/internal/transport/http/handlers/employees"
	"talenthub/internal/transport/http/middleware"
)

// Paths whose request payloads are captured (masked) in the audit log.
var sensitivePathPrefixes = []string{"/api/v1/dsr", "/api/v1/admin"}

type App struct {
	Config config.Config
	DB     *pgxpool.Pool
	Audit  *audit.Log
	Router http.Handler
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, err
		}
	}

	auditLog, err := audit.Open(cfg.AuditLogFile)
	if err != nil {
		pool.Close()
		return nil, err
	}

	registry := prometheus.NewRegistry()
	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New(registry)
	}

	employeeStore := directory.NewStore(pool)
	employees := directory.NewService(employeeStore)
	dsrStore := dsr.NewStore(pool)
	dsrService := dsr.NewService(dsrStore, employeeStore, cfg.ExportDir, m)
	reportsService := reports.New(pool)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(chimw.Recoverer)
	router.Use(chimw.RequestSize(cfg.MaxBodyBytes))
	if m != nil {
		router.Use(middleware.Metrics(m))
	}
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.Audit(auditLog, m, sensitivePathPrefixes...))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(employees, cfg.JWTSecret, cfg.TokenTTL)
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.With(middleware.RequireAuth).Get("/auth/me", authHandler.HandleMe)

		employeehandler.NewHandler(employees).RegisterRoutes(r)
		dsrhandler.NewHandler(dsrService).RegisterRoutes(r)
		adminhandler.NewHandler(reportsService, dsrService, auditLog, cfg.RetentionDays).RegisterRoutes(r)
	})

	return &App{Config: cfg, DB: pool, Audit: auditLog, Router: router}, nil
}

func (a *App) Close() {
	if a.Audit != nil {
		a.Audit.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	app, err := New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	log.Printf("talenthub server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
