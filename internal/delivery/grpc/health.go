package grpc

import (
	"context"
	"net"
	"time"

	"github.com/sirupsen/logrus"
	googlegrpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health service name reported next to the overall ("") status.
const ServiceName = "catalog.CatalogService"

type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthServer exposes grpc.health.v1 and keeps it in sync with the database.
type HealthServer struct {
	server   *googlegrpc.Server
	health   *health.Server
	db       Pinger
	interval time.Duration
	log      *logrus.Logger
}

func NewHealthServer(db Pinger, interval time.Duration, logger *logrus.Logger) *HealthServer {
	server := googlegrpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(server, hs)
	reflection.Register(server)

	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	return &HealthServer{
		server:   server,
		health:   hs,
		db:       db,
		interval: interval,
		log:      logger,
	}
}

func (h *HealthServer) Serve(lis net.Listener) error {
	h.log.Infof("gRPC health server listening on %s", lis.Addr())
	return h.server.Serve(lis)
}

// Watch probes the database until ctx is done.
func (h *HealthServer) Watch(ctx context.Context) {
	h.Probe(ctx)
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Probe(ctx)
		}
	}
}

// Probe pings the database once and updates the serving status.
func (h *HealthServer) Probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := h.db.PingContext(pingCtx); err != nil {
		h.log.Warnf("gRPC health: database ping failed: %v", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}

func (h *HealthServer) GracefulStop() {
	h.health.Shutdown()
	h.server.GracefulStop()
}
