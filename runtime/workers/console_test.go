package workers

import (
	"context"
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestConsoleWorker_ForwardsLinesThenFinishes(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	worker := NewConsoleWorker(log, slices.Values([]string{"hello", "bye"}))

	finished := make(chan error, 1)
	go func() { finished <- worker.Run(context.Background()) }()

	req.Equal("hello", <-worker.Lines())
	req.Equal("bye", <-worker.Lines())
	select {
	case err := <-finished:
		req.NoError(err)
	case <-time.After(time.Second):
		req.Fail("worker should finish once the input is exhausted")
	}
}

func TestConsoleWorker_StopsWhileNobodyReads(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	worker := NewConsoleWorker(log, slices.Values([]string{"unread"}))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	req.NoError(worker.Run(ctx))
}

type idle struct{}

func (idle) Active() bool { return false }

func TestTelemetryWorker_StopsOnCancel(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	worker := NewTelemetryWorker(log, 5*time.Millisecond, idle{})
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	req.NoError(worker.Run(ctx))
}
