package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appService "farmatime/internal/application/service"
	"farmatime/internal/infrastructure/database/sqlite"
	"farmatime/internal/infrastructure/email"
	"farmatime/internal/infrastructure/scheduler"
	"farmatime/internal/interfaces/api/handler"
	"farmatime/internal/interfaces/api/router"
	"farmatime/internal/pkg/clock"
	"farmatime/internal/pkg/config"
	appLogger "farmatime/internal/pkg/logger"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file
)

func gracefulShutdown(apiServer *http.Server, schedulerService appService.SchedulerService, appLog appLogger.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	appLog.Info("Shutting down gracefully, press Ctrl+C again to force")

	// Stop the scheduler first so no run starts mid-shutdown
	schedulerService.Stop()
	appLog.Info("Scheduler stopped.")

	if err := sqlite.CloseDB(); err != nil {
		appLog.Error("Error closing database", err)
	} else {
		appLog.Info("Database connection closed.")
	}

	// The context informs the server it has 5 seconds to finish the request
	// it is currently handling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Server forced to shutdown", err)
	}

	appLog.Info("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog := appLogger.New(cfg.Log.Level)
	appLog.Info("Logger initialized.")

	// --- Infrastructure ---
	db := sqlite.NewDB(cfg.DB.URL)
	userRepo := sqlite.NewUserRepository(db)
	requestRepo := sqlite.NewRequestRepository(db)
	appLog.Info("Database and repositories initialized.")

	mailer := email.NewClient(cfg.Email, appLog)
	cronScheduler := scheduler.NewScheduler(appLog)

	// --- Application Services ---
	runnerSvc, err := appService.NewRunnerService(
		userRepo, requestRepo, mailer, mailer,
		clock.NewRealClock(), cfg.Jobs, cfg.Email.TrackTag, appLog,
	)
	if err != nil {
		appLog.Error("Failed to initialize runner service", err)
		os.Exit(1)
	}
	userSvc := appService.NewUserService(userRepo, cfg.Jobs, appLog)
	requestSvc := appService.NewRequestService(requestRepo, appLog)
	schedulerSvc := appService.NewSchedulerService(cronScheduler, runnerSvc, cfg.Jobs.RunJobsCron, appLog)
	appLog.Info("Application services initialized.")

	// --- Optional in-process trigger ---
	if err := schedulerSvc.Start(); err != nil {
		// Log the error but continue starting the server; the external
		// worker trigger still works.
		appLog.Error("Failed to start the in-process trigger", err)
	}

	// --- API Handlers ---
	internalHandler := handler.NewInternalHandler(runnerSvc, appLog)
	userHandler := handler.NewUserHandler(userSvc, appLog)
	requestHandler := handler.NewRequestHandler(requestSvc, userSvc, appLog)
	appLog.Info("API handlers initialized.")

	// --- Router ---
	routerCfg := &router.Config{
		Server:          cfg.Server,
		InternalHandler: internalHandler,
		UserHandler:     userHandler,
		RequestHandler:  requestHandler,
		Logger:          appLog,
	}
	echoRouter := router.NewRouter(routerCfg)

	// --- HTTP Server ---
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      echoRouter,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// --- Start Server & Shutdown Handling ---
	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, schedulerSvc, appLog, done)

	appLog.Info(fmt.Sprintf("Server starting on port %d", cfg.Server.Port))
	err = apiServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		appLog.Error("HTTP server ListenAndServe error", err)
		panic(fmt.Sprintf("http server error: %s", err))
	}

	// Wait for graceful shutdown signal
	<-done
	appLog.Info("Graceful shutdown complete.")
}
