package grpc

import (
	"errors"
	"log/slog"
	"net"

	grpcprom "github.com/grpc-ecosystem/go-grpc-middleware/providers/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	gRPC "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the name the users API is registered under in the health service.
const ServiceName = "users_service"

// HealthServer exposes the standard gRPC health checking protocol for the
// service, instrumented with Prometheus server metrics.
type HealthServer struct {
	server *gRPC.Server
	health *health.Server
	logger *slog.Logger
}

// NewHealthServer builds the gRPC server and registers its metrics with reg.
// A registration failure is logged and the server is still usable.
func NewHealthServer(reg prometheus.Registerer, logger *slog.Logger) *HealthServer {
	grpcMetrics := grpcprom.NewServerMetrics(
		grpcprom.WithServerHandlingTimeHistogram(),
	)
	if err := reg.Register(grpcMetrics); err != nil {
		logger.Warn("Failed to register gRPC Prometheus metrics", "error", err)
	}

	server := gRPC.NewServer(
		gRPC.ChainUnaryInterceptor(grpcMetrics.UnaryServerInterceptor()),
		gRPC.ChainStreamInterceptor(grpcMetrics.StreamServerInterceptor()),
	)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(server, hs)
	reflection.Register(server)
	grpcMetrics.InitializeMetrics(server)

	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	return &HealthServer{server: server, health: hs, logger: logger}
}

// SetServing flips both the overall and the service status.
func (s *HealthServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
	s.logger.Info("gRPC health status changed", "status", status.String())
}

// Serve blocks until the server stops. It returns nil after GracefulStop.
func (s *HealthServer) Serve(lis net.Listener) error {
	if err := s.server.Serve(lis); err != nil && !errors.Is(err, gRPC.ErrServerStopped) {
		return err
	}
	return nil
}

// GracefulStop marks the service NOT_SERVING and waits for in-flight RPCs.
func (s *HealthServer) GracefulStop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}

// Stop terminates the server immediately.
func (s *HealthServer) Stop() {
	s.server.Stop()
}
