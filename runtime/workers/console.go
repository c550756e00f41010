package workers

import (
	"context"
	"iter"
	"log/slog"
)

// ConsoleWorker hands the operator's lines to whoever is chatting.
// Lines typed while nobody reads Lines are held until someone does.
type ConsoleWorker struct {
	log   *slog.Logger
	input iter.Seq[string]
	lines chan string
}

func NewConsoleWorker(log *slog.Logger, input iter.Seq[string]) *ConsoleWorker {
	return &ConsoleWorker{log: log, input: input, lines: make(chan string)}
}

func (w *ConsoleWorker) Lines() <-chan string {
	return w.lines
}

// Run returns nil once the input is exhausted, which ends supervision.
func (w *ConsoleWorker) Run(ctx context.Context) error {
	// The read itself cannot be interrupted, the reader goroutine ends at
	// the next line or when the input is closed.
	read := make(chan string)
	go func() {
		defer close(read)
		for line := range w.input {
			select {
			case read <- line:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-read:
			if !ok {
				w.log.Info("Console input closed")
				return nil
			}
			select {
			case w.lines <- line:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
