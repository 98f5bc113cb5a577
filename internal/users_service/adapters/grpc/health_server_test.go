package grpc

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gRPC "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

const bufSize = 1024 * 1024

func startHealthServer(t *testing.T) (*HealthServer, healthpb.HealthClient, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	srv := NewHealthServer(reg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	lis := bufconn.Listen(bufSize)
	served := make(chan error, 1)
	go func() { served <- srv.Serve(lis) }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, err := gRPC.DialContext(ctx, "bufnet",
		gRPC.WithContextDialer(func(context.Context, string) (net.Conn, error) { return lis.Dial() }),
		gRPC.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		srv.Stop()
		assert.NoError(t, <-served)
	})
	return srv, healthpb.NewHealthClient(conn), reg
}

func check(t *testing.T, client healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestHealthServer_StartsNotServing(t *testing.T) {
	_, client, _ := startHealthServer(t)

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, client, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, client, ServiceName))
}

func TestHealthServer_SetServing(t *testing.T) {
	srv, client, _ := startHealthServer(t)

	srv.SetServing(true)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, client, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, client, ServiceName))

	srv.SetServing(false)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, client, ServiceName))
}

func TestHealthServer_RecordsMetrics(t *testing.T) {
	srv, client, reg := startHealthServer(t)
	srv.SetServing(true)
	check(t, client, ServiceName)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "grpc_server_handled_total")
	assert.Contains(t, names, "grpc_server_handling_seconds")
}

func TestHealthServer_SecondRegistrationIsTolerated(t *testing.T) {
	reg := prometheus.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	first := NewHealthServer(reg, logger)
	second := NewHealthServer(reg, logger)
	assert.NotNil(t, first)
	assert.NotNil(t, second)
	first.Stop()
	second.Stop()
}
