package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"rpc-lab/console"
	"rpc-lab/infrastructure/grpc/client"
	"rpc-lab/infrastructure/grpc/server"
	"rpc-lab/infrastructure/storage"
	pb "rpc-lab/proto/services"
	"rpc-lab/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

type BaseGrpcSuite struct {
	suite.Suite
	Config Config
	log    *slog.Logger
	server *grpc.Server
	db     *badger.DB
}

// SetupSuite loads the environment configuration and starts a local server
// unless an external one is configured.
func (s *BaseGrpcSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	s.log = logs.GetLoggerFromLevel(slog.LevelDebug)

	if s.Config.ServerAddr == "" {
		s.Config.ServerAddr = s.startLocalServer()
	}
}

func (s *BaseGrpcSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Stop()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
}

func (s *BaseGrpcSuite) startLocalServer() string {
	db, err := storage.OpenInMemory()
	s.Require().NoError(err)
	s.db = db
	repository := storage.NewTransactionRepository(db, s.log)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	s.Require().NoError(err)

	s.server = grpc.NewServer(grpc.ChainStreamInterceptor(server.StreamLoggingInterceptor(s.log)))
	pb.RegisterPaymentServiceServer(s.server, server.NewPaymentServer(s.log, services.NewPaymentService(s.log, repository)))
	pb.RegisterTransactionServiceServer(s.server, server.NewTransactionServer(s.log, services.NewTransactionService(repository)))
	pb.RegisterChatServiceServer(s.server, server.NewChatServer(s.log, "server", server.EchoMode,
		console.NewPrinter(&strings.Builder{}, "server", false), nil, 8))
	go func() { _ = s.server.Serve(listener) }()

	return listener.Addr().String()
}

// GrpcConn initializes a client connection that logs every unary call in the test output.
func (s *BaseGrpcSuite) GrpcConn(t *testing.T, name string) *client.Conn {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)

	conn, err := client.Dial(s.Config.ServerAddr, s.log,
		grpc.WithUnaryInterceptor(func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
			start := time.Now()
			err := invoker(ctx, method, req, reply, cc, opts...)

			logBuilder := strings.Builder{}
			fmt.Fprintf(&logBuilder, "GRPC %s [%s] in %v", method, status.Code(err), time.Since(start))
			if s.Config.DebugMessages {
				fmt.Fprintf(&logBuilder, "\nREQUEST: %v", req)
				if err != nil {
					fmt.Fprintf(&logBuilder, "\nERROR: %v", err)
				} else {
					fmt.Fprintf(&logBuilder, "\nRESPONSE: %v", reply)
				}
			}
			t.Log(logBuilder.String())
			return err
		}),
	)
	s.Require().NoError(err, "Failed to connect to gRPC server at "+s.Config.ServerAddr)
	return conn
}

// WithConn provides a connection to the server within a contextual test step.
func (s *BaseGrpcSuite) WithConn(name string, fn func(ctx context.Context, conn *client.Conn)) {
	conn := s.GrpcConn(s.T(), name)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fn(ctx, conn)
}
