package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"paghe/internal/db"
	"paghe/internal/domain/contracts"
	"paghe/internal/domain/leave"
	"paghe/internal/domain/payslip"
	"paghe/internal/platform/config"
	"paghe/internal/platform/jobs"
	leavehandler "paghe/internal/transport/http/handlers/leave"
	payrollhandler "paghe/internal/transport/http/handlers/payroll"
	"paghe/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	if cfg.RunSeed {
		if err := db.Seed(ctx, pool); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	contractStore := contracts.NewStore(pool)
	leaveService := leave.NewService(leave.NewStore(pool), contractStore)
	payslipService := payslip.NewService(payslip.NewStore(pool), contractStore, leaveService, payslip.DefaultTaxConfig())

	jobsService := jobs.New(leaveService, cfg.LeaveAccrualInterval)
	jobsService.Start(ctx)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(chimiddleware.Recoverer)

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

	router.Route("/api/v1", func(r chi.Router) {
		payrollhandler.NewHandler(payslipService, contractStore).RegisterRoutes(r)
		leavehandler.NewHandler(leaveService).RegisterRoutes(r)
	})

	log.Printf("payroll server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
