package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"carbon-planner/api/rest/routes"
	"carbon-planner/config"
	"carbon-planner/core/estimator"
	"carbon-planner/core/monitoring"
	"carbon-planner/core/optimizer"
	"carbon-planner/core/planning"
	"carbon-planner/core/repository"

	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cat, err := cfg.Catalog()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	defaults, err := cfg.Defaults()
	if err != nil {
		log.Fatalf("Failed to load defaults: %v", err)
	}

	// Initialize storage
	var store repository.Store
	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL not set, using in-memory store")
		store = repository.NewMemoryStore()
	} else {
		db, err := repository.NewDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.Migrate(); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		log.Println("Database connected successfully")
		store = repository.NewPostgresStore(db)
	}

	// Initialize monitoring; the cost tracker is fed through the exporter
	var costTracker *monitoring.CostTracker
	var metrics *monitoring.MetricsExporter
	if cfg.MetricsEnabled {
		costTracker = monitoring.NewCostTracker()
		metrics = monitoring.NewMetricsExporter(costTracker)
	}

	// Initialize planning engine
	est := estimator.NewEstimator(cat, cfg.Buffers)
	selector := optimizer.NewPlanSelector(est, cat.Windows)
	service := planning.NewService(est, selector, store, metrics, planning.Defaults{
		ReportingRegime: defaults.ReportingRegime,
		Profile:         defaults.Profile,
		Compliance:      defaults.Compliance,
	})

	r := mux.NewRouter()
	routes.SetupRoutes(r, service, metrics, costTracker)

	// Start server
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Starting server on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := server.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
