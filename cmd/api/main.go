package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Beneli93/kvs-backend/internal/config"
	"github.com/Beneli93/kvs-backend/internal/handler"
	"github.com/Beneli93/kvs-backend/internal/persistence"
	"github.com/Beneli93/kvs-backend/internal/service"
)

func main() {
	// Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	logger.Info("starting KVS API server")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Load the store once for the session. A corrupt data file is
	// reported and treated as no data yet.
	st, err := persistence.Load(cfg.Data.File)
	if err != nil {
		logger.Warn("data file unusable, starting with empty store",
			slog.String("path", cfg.Data.File),
			slog.String("error", err.Error()),
		)
	}

	logger.Info("store loaded",
		slog.String("path", cfg.Data.File),
		slog.Int("customers", st.Len()),
	)

	// Initialize services
	saver := service.NewFileSaver(cfg.Data.File)
	customerSvc := service.NewCustomerService(st, saver, logger)
	appointmentSvc := service.NewAppointmentService(st, saver, logger)

	// Initialize handlers
	customerHandler := handler.NewCustomerHandler(customerSvc, logger)
	appointmentHandler := handler.NewAppointmentHandler(appointmentSvc, cfg.Data.ReminderDays, logger)
	healthHandler := handler.NewHealthHandler(st, cfg.Data.File, logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(handler.RecoveryMiddleware(logger))
	r.Use(handler.LoggingMiddleware(logger))
	r.Use(handler.CORSMiddleware)

	// Register routes
	r.Get("/health", healthHandler.Health)
	r.Get("/stats", customerHandler.Stats)

	r.Route("/customers", func(r chi.Router) {
		r.Post("/", customerHandler.CreateCustomer)
		r.Get("/", customerHandler.ListCustomers)
		r.Get("/{id}", customerHandler.GetCustomer)
		r.Put("/{id}", customerHandler.UpdateCustomer)
		r.Delete("/{id}", customerHandler.DeleteCustomer)

		r.Post("/{id}/appointments", appointmentHandler.BookAppointment)
		r.Put("/{id}/appointments/{index}", appointmentHandler.UpdateAppointment)
		r.Delete("/{id}/appointments/{index}", appointmentHandler.CancelAppointment)
	})

	r.Route("/appointments", func(r chi.Router) {
		r.Get("/", appointmentHandler.SearchAppointments)
		r.Get("/upcoming", appointmentHandler.UpcomingAppointments)
		r.Get("/reminders", appointmentHandler.Reminders)
	})

	// Create server
	addr := fmt.Sprintf(":%d", cfg.API.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("API server listening", slog.String("addr", addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Wait for interrupt signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)

	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown failed", slog.String("error", err.Error()))
			os.Exit(1)
		}

		logger.Info("server stopped gracefully")
	}
}
