package health

import (
	"fmt"
	"net"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"max.ks1230/budget-tracker/internal/logger"
)

// Service is the name reported alongside the overall ("") status.
const Service = "budget.Tracker"

type Server struct {
	server *grpc.Server
	status *grpchealth.Server
	lis    net.Listener
}

func NewServer(port int) (*Server, error) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, errors.Wrap(err, "cannot create health server")
	}

	rpcServer := grpc.NewServer()
	status := grpchealth.NewServer()
	healthpb.RegisterHealthServer(rpcServer, status)

	return &Server{
		server: rpcServer,
		status: status,
		lis:    lis,
	}, nil
}

func (s *Server) Addr() net.Addr {
	return s.lis.Addr()
}

func (s *Server) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.status.SetServingStatus("", st)
	s.status.SetServingStatus(Service, st)
}

func (s *Server) Serve() {
	logger.Info("gRPC health server listening", zap.Any("addr", s.lis.Addr()))
	err := s.server.Serve(s.lis)
	if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		logger.Error("failed to serve gRPC", zap.Error(err))
	}
}

func (s *Server) Shutdown() {
	s.status.Shutdown()
	s.server.GracefulStop()
	logger.Info("grpc health server stopped")
}
