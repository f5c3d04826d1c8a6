// Package grpc exposes the sync backend as the nutrisync.v1.SyncService
// gRPC service.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/nutrisync/internal/common"
	"github.com/dmitrijs2005/nutrisync/internal/logging"
	pb "github.com/dmitrijs2005/nutrisync/internal/proto"
	"github.com/dmitrijs2005/nutrisync/internal/server/models"
	"github.com/dmitrijs2005/nutrisync/internal/server/repositories/records"
	"github.com/dmitrijs2005/nutrisync/internal/server/services"
	"google.golang.org/grpc"
)

// UserService is the account side of the backend.
type UserService interface {
	Register(ctx context.Context, username string, salt, verifier []byte) (*models.User, error)
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, verifierCandidate []byte) (string, *services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

// RecordService is the data side of the backend.
type RecordService interface {
	Push(ctx context.Context, rec *models.Record) (*services.PushResult, error)
	Pull(ctx context.Context, userID, entityType string, afterSeq int64, limit int) (*services.PullPage, error)
	DeleteScope(ctx context.Context, f records.Filter) (int64, error)
}

type GRPCServer struct {
	pb.UnimplementedSyncServiceServer
	address   string
	users     UserService
	records   RecordService
	logger    logging.Logger
	jwtSecret []byte
	adminKey  []byte
}

// NewGRPCServer wires the handlers. An empty adminKey disables the
// every-user reset path.
func NewGRPCServer(a string, l logging.Logger, us UserService, rs RecordService, secretKey, adminKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		records:   rs,
		jwtSecret: []byte(secretKey),
		adminKey:  []byte(adminKey),
	}
}

// NewServer builds the grpc.Server with the interceptor chain and the
// service registered, without listening. Message limits match the client.
func (s *GRPCServer) NewServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor),
		grpc.MaxRecvMsgSize(common.MaxMessageBytes),
		grpc.MaxSendMsgSize(common.MaxMessageBytes),
	)
	pb.RegisterSyncServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
