package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/aradsms/users_phonebook/internal/platform/config"
	"github.com/aradsms/users_phonebook/internal/platform/logger"
	grpcadapter "github.com/aradsms/users_phonebook/internal/users_service/adapters/grpc"
	"github.com/aradsms/users_phonebook/internal/users_service/app"
	"github.com/aradsms/users_phonebook/internal/users_service/repository/memory"
	httptransport "github.com/aradsms/users_phonebook/internal/users_service/transport/http"
)

const serviceName = "users_service"

func main() {
	mainCtx, mainCancel := context.WithCancel(context.Background())
	defer mainCancel()

	cfg, err := config.Load(serviceName)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	appLogger := logger.New(cfg.LogLevel, cfg.LogFormat).With("service", serviceName)
	slog.SetDefault(appLogger)

	appLogger.Info("Users service starting...",
		"http_port", cfg.UsersServiceHTTPPort,
		"metrics_port", cfg.UsersServiceMetricsPort,
		"grpc_health_port", cfg.UsersServiceGRPCHealthPort,
		"log_level", cfg.LogLevel,
	)

	store := memory.NewUsersStore()
	usersApp := app.NewApplication(store, appLogger)
	usersHandler := httptransport.NewUsersHandler(usersApp, appLogger, validator.New())
	router := httptransport.NewRouter(usersHandler, appLogger, cfg.HTTPRequestTimeout)

	g, groupCtx := errgroup.WithContext(mainCtx)

	// --- Start HTTP API Server ---
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.UsersServiceHTTPPort),
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.HTTPRequestTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}
	g.Go(func() error {
		appLogger.Info("HTTP server starting", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server ListenAndServe error", "error", err)
			return err
		}
		appLogger.Info("HTTP server shut down gracefully.")
		return nil
	})

	// --- Start Metrics HTTP Server ---
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.UsersServiceMetricsPort),
		Handler: metricsMux,
	}
	g.Go(func() error {
		appLogger.Info("Metrics HTTP server starting", "address", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Metrics HTTP server ListenAndServe error", "error", err)
			return err
		}
		appLogger.Info("Metrics HTTP server shut down gracefully.")
		return nil
	})

	// --- Start gRPC Health Server (optional) ---
	var healthServer *grpcadapter.HealthServer
	if cfg.UsersServiceGRPCHealthPort != 0 {
		grpcListenAddress := fmt.Sprintf(":%d", cfg.UsersServiceGRPCHealthPort)
		grpcListener, err := net.Listen("tcp", grpcListenAddress)
		if err != nil {
			appLogger.Error("Failed to listen for gRPC", "address", grpcListenAddress, "error", err)
			os.Exit(1)
		}
		healthServer = grpcadapter.NewHealthServer(prometheus.DefaultRegisterer, appLogger)
		healthServer.SetServing(true)

		g.Go(func() error {
			appLogger.Info("gRPC health server starting", "address", grpcListenAddress)
			if err := healthServer.Serve(grpcListener); err != nil {
				appLogger.Error("gRPC server failed to serve", "error", err)
				return err
			}
			appLogger.Info("gRPC server shut down gracefully.")
			return nil
		})
	} else {
		appLogger.Info("gRPC health server disabled")
	}

	// --- Graceful Shutdown Handling ---
	stopSignal := make(chan os.Signal, 1)
	signal.Notify(stopSignal, syscall.SIGINT, syscall.SIGTERM)

	g.Go(func() error {
		select {
		case sig := <-stopSignal:
			appLogger.Info("Received termination signal", "signal", sig.String())
			mainCancel()
			return nil
		case <-groupCtx.Done():
			return nil
		}
	})

	g.Go(func() error {
		<-groupCtx.Done()
		appLogger.Info("Initiating graceful shutdown of servers...")

		if healthServer != nil {
			healthServer.SetServing(false)
		}

		shutdownCtx, cancelShutdownTimeout := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancelShutdownTimeout()

		var shutdownErrors error

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("HTTP server graceful shutdown failed", "error", err)
			shutdownErrors = errors.Join(shutdownErrors, fmt.Errorf("http shutdown: %w", err))
		}

		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Metrics HTTP server graceful shutdown failed", "error", err)
			shutdownErrors = errors.Join(shutdownErrors, fmt.Errorf("metrics http shutdown: %w", err))
		}

		if healthServer != nil {
			stopped := make(chan struct{})
			go func() {
				healthServer.GracefulStop()
				close(stopped)
			}()
			select {
			case <-stopped:
			case <-shutdownCtx.Done():
				appLogger.Warn("gRPC graceful stop timed out, forcing stop")
				healthServer.Stop()
			}
		}

		return shutdownErrors
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Users service exited with error", "error", err)
		os.Exit(1)
	}
	appLogger.Info("Users service shut down.")
}
