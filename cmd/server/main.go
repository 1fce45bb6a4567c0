package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"trivia-api/internal/config"
	"trivia-api/internal/data"
	"trivia-api/internal/handler"
	"trivia-api/internal/logger"
	"trivia-api/internal/metrics"
	"trivia-api/internal/middleware"
	"trivia-api/internal/query"
	"trivia-api/internal/service"
)

func main() {
	// --- Environment ---
	if os.Getenv("TRIVIA_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			fmt.Printf("Warning: could not load .env file: %v\n", err)
		}
	}

	// --- Configuration Loading ---
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, os.Stdout)

	// --- Database Initialization and Migration ---
	log.Info("Connecting to the database...")
	db, err := data.NewDB(cfg.DB)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()
	log.Info("Database connection successful.")

	if cfg.DB.Migrate {
		log.Info("Applying database migrations...")
		if err := data.ApplyMigrations(db); err != nil {
			log.Fatal(err, "Failed to apply migrations")
		}
		log.Info("Migrations applied successfully.")
	}

	// --- Dependency Injection and Handler Initialization ---
	opts := service.Options{PageSize: cfg.Quiz.PageSize}
	if cfg.Quiz.MinCategoryID != 0 || cfg.Quiz.MaxCategoryID != 0 {
		opts.CategoryRange = &query.CategoryRange{Min: cfg.Quiz.MinCategoryID, Max: cfg.Quiz.MaxCategoryID}
	}
	questionService := service.NewQuestionService(data.NewStore(db), opts)
	appMetrics := metrics.New()

	questionHandler := handler.NewQuestionHandler(questionService, log)
	quizHandler := handler.NewQuizHandler(questionService, appMetrics, log)
	healthHandler := handler.NewHealthHandler(db)
	errorMiddleware := middleware.Error(log)

	// --- Router Setup ---
	router := handler.NewRouter(questionHandler, quizHandler, healthHandler, errorMiddleware, appMetrics, cfg.CORS)

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}
	go func() {
		if cfg.Server.TLS.Enabled {
			log.Info(fmt.Sprintf("Starting HTTPS server on %s", server.Addr))
			if err := server.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTPS server")
			}
		} else {
			log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTP server")
			}
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}
