package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"rpc-lab/chat"
	"rpc-lab/console"
	"rpc-lab/infrastructure/grpc/client"

	"github.com/mama165/sdk-go/logs"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run pays, prints the resulting history, then chats on the terminal
// until stdin ends or the server closes the session.
func run(args []string) (int, error) {
	config, err := loadConfig(args)
	if err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := client.Dial(config.ServerAddress, logger)
	if err != nil {
		return exitRuntime, err
	}
	defer conn.Close()

	// 1. Payment
	success, err := client.NewPaymentClient(conn).Pay(ctx, config.Payment())
	if err != nil {
		return exitRuntime, fmt.Errorf("payment failed: %w", err)
	}
	fmt.Printf("RESPONSE={success: %t}\n", success)

	// 2. History
	txs, err := client.NewTransactionClient(conn).History(ctx, config.UserID)
	if err != nil {
		return exitRuntime, fmt.Errorf("history failed: %w", err)
	}
	console.PrintTransactions(os.Stdout, txs)

	if config.SkipChat {
		return exitOK, nil
	}

	// 3. Chat
	input, err := console.OpenStdin(logger, config.UserID+"> ")
	if err != nil {
		return exitRuntime, fmt.Errorf("console unavailable: %w", err)
	}
	defer input.Close()

	printer := console.NewPrinter(input.Output, config.UserID, config.Colours)
	transport := client.NewChatTransport(logger, conn)
	if err := chat.Run(ctx, logger, config.UserID, transport, input.Lines, printer, config.QueueCapacity); err != nil {
		return exitRuntime, err
	}
	return exitOK, nil
}
