package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ml-orchestrator/api/rest/routes"
	"ml-orchestrator/config"
	"ml-orchestrator/core/executor"
	"ml-orchestrator/core/orchestrator"
	"ml-orchestrator/core/plan"
	"ml-orchestrator/core/registry"
	"ml-orchestrator/core/repository"
	"ml-orchestrator/storage"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	// Initialize database
	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(); err != nil {
		log.Fatalf("Failed to ensure database schema: %v", err)
	}
	log.Println("Database connected successfully")

	// Load stage plans
	plans := plan.NewRegistry()
	if cfg.StagePlanPath != "" {
		plans, err = plan.LoadFile(cfg.StagePlanPath)
		if err != nil {
			log.Fatalf("Failed to load stage plans: %v", err)
		}
		log.Printf("Stage plans loaded from %s", cfg.StagePlanPath)
	}

	// Initialize repositories and archiver
	modelRepo := repository.NewModelRepository(db)
	eventRepo := repository.NewEventRepository(db)
	archiver := storage.NewArchiver(modelRepo, eventRepo)

	// Initialize the training engine
	simExecutor := executor.NewSimulatedExecutor()
	simExecutor.Speed = cfg.SimSpeed
	modelRegistry := registry.NewModelRegistry()

	// Restore previously trained models so they stay queryable across restarts
	restored, err := modelRepo.ListModels(100)
	if err != nil {
		log.Printf("Failed to restore trained models: %v", err)
	} else {
		for _, m := range restored {
			modelRegistry.Put(m)
		}
		if len(restored) > 0 {
			log.Printf("Restored %d trained models from database", len(restored))
		}
	}

	orch := orchestrator.NewOrchestrator(plans, simExecutor, modelRegistry, archiver)

	// Setup routes
	r := mux.NewRouter()
	routes.SetupRoutes(r, orch, modelRegistry, plans, eventRepo)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

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
