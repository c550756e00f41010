package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rpc-lab/console"
	"rpc-lab/infrastructure/grpc/server"
	"rpc-lab/infrastructure/storage"
	"rpc-lab/internal"
	pb "rpc-lab/proto/services"
	"rpc-lab/runtime/workers"
	"rpc-lab/services"

	"github.com/mama165/sdk-go/database"
	grpc3 "github.com/mama165/sdk-go/grpc"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Exit codes to provide meaningful status to the operating system or service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and blocks until a signal or a serving error.
// Deferred cleanups run before the process exits.
func run() (int, error) {
	// 1. Configuration & Logger
	config, err := internal.LoadConfig()
	if err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	// 2. Ledger (in-memory BadgerDB)
	db, err := storage.OpenInMemory()
	if err != nil {
		return exitRuntime, err
	}
	defer func() {
		logger.Info("Closing ledger...")
		_ = db.Close()
	}()
	transactionRepository := storage.NewTransactionRepository(db, logger)
	defer func() { _ = transactionRepository.Close() }()
	if config.InspectorPort > 0 {
		logger.Info("Debug ledger inspector available",
			"url", fmt.Sprintf("http://localhost:%d%s", config.InspectorPort, storage.InspectorEndpoint))
		database.StartDebugServer(db, config.InspectorPort, storage.InspectorEndpoint, storage.LedgerRow)
	}

	// 3. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Chat side: console input only when the operator chats
	mode := server.ChatMode(config.ChatMode)
	sup := workers.NewSupervisor(logger).WithRestartDelay(config.RestartInterval)
	var output io.Writer = os.Stdout
	var lines <-chan string
	if mode == server.ConsoleMode {
		input, err := console.OpenStdin(logger, config.Identity+"> ")
		if err != nil {
			return exitRuntime, fmt.Errorf("console unavailable: %w", err)
		}
		defer input.Close()
		output = input.Output
		consoleWorker := workers.NewConsoleWorker(logger, input.Lines)
		lines = consoleWorker.Lines()
		sup.Add(consoleWorker)
	}
	printer := console.NewPrinter(output, config.Identity, config.Colours)
	chatServer := server.NewChatServer(logger, config.Identity, mode, printer, lines, config.QueueCapacity)
	sup.Add(workers.NewTelemetryWorker(logger, config.MetricInterval, chatServer))

	// 5. gRPC Server Setup
	listener, err := net.Listen("tcp", config.Address)
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to listen on %s: %w", config.Address, err)
	}

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(grpc3.UnaryLoggingInterceptor(logger)),
		grpc.ChainStreamInterceptor(server.StreamLoggingInterceptor(logger)),
	)
	paymentService := services.NewPaymentService(logger, transactionRepository)
	transactionService := services.NewTransactionService(transactionRepository)
	pb.RegisterPaymentServiceServer(s, server.NewPaymentServer(logger, paymentService))
	pb.RegisterTransactionServiceServer(s, server.NewTransactionServer(logger, transactionService))
	pb.RegisterChatServiceServer(s, chatServer)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(s, healthServer)
	for _, name := range []string{
		pb.PaymentService_ServiceDesc.ServiceName,
		pb.TransactionService_ServiceDesc.ServiceName,
		pb.ChatService_ServiceDesc.ServiceName,
	} {
		healthServer.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	}

	supervised := make(chan struct{})
	go func() {
		defer close(supervised)
		sup.Run(ctx)
	}()

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting gRPC server", "address", config.Address, "chat_mode", mode)
		if err := s.Serve(listener); err != nil && !stderrors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	// 6. Wait for Stop or Error
	code, runErr := exitOK, error(nil)
	select {
	case <-ctx.Done():
		logger.Info("Shutting down gracefully...")
	case runErr = <-errChan:
		code = exitRuntime
	}

	// 7. Final Cleanup
	healthServer.Shutdown()
	gracefulStop(s, config.ShutdownTimeout)
	sup.Stop()
	<-supervised
	logger.Info("Program stopped cleanly")
	return code, runErr
}

// gracefulStop lets running calls finish, a chat session included, for at most timeout.
func gracefulStop(s *grpc.Server, timeout time.Duration) {
	stopped := make(chan struct{})
	go func() {
		s.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(timeout):
		s.Stop()
	}
}
