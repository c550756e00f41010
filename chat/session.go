// Package chat drives a bidirectional chat stream.
//
// A Session couples two independent directions over one stream: a producer
// goroutine turns console lines into outbound messages on a bounded Queue,
// while the caller's goroutine drains inbound messages into a Sink. Neither
// direction waits for the other; the Queue is the only thing they share.
package chat

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"iter"
	"log/slog"

	"rpc-lab/domain"
	"rpc-lab/errors"
)

type Session struct {
	log      *slog.Logger
	identity string
	queue    *Queue
	inbound  Inbound
	produced chan struct{}
}

// Start launches the producer over lines and opens the stream carrying the
// queue's readable end. It returns once the remote side accepted the stream.
//
// When the stream cannot be opened the queue is dropped, so the producer
// ends at its next enqueue, and the returned error wraps ErrConnection.
func Start(ctx context.Context, log *slog.Logger, identity string,
	transport Transport, lines iter.Seq[string], capacity int) (*Session, error) {
	s := &Session{
		log:      log,
		identity: identity,
		queue:    NewQueue(capacity),
		produced: make(chan struct{}),
	}

	go func() {
		defer close(s.produced)
		sent := Produce(ctx, log, identity, lines, s.queue)
		log.Debug("Producer finished", "identity", identity, "sent", sent)
	}()

	inbound, err := transport.Open(ctx, s.queue)
	if err != nil {
		s.queue.Drop()
		return nil, fmt.Errorf("%w: %w", errors.ErrConnection, err)
	}
	s.inbound = inbound
	return s, nil
}

// Consume displays inbound messages in the order they arrive, on the
// caller's goroutine. It returns nil when the remote side ends the stream
// or ctx was canceled; any other fault is wrapped in ErrStream.
// The queue is dropped on return, so the producer stops reading input.
func (s *Session) Consume(ctx context.Context, sink Sink) error {
	defer s.queue.Drop()
	for {
		msg, err := s.inbound.Next()
		if err != nil {
			if stderrors.Is(err, io.EOF) {
				s.log.Debug("Inbound stream ended", "identity", s.identity)
				return nil
			}
			// Normal exit if the user triggered a shutdown.
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("%w: %w", errors.ErrStream, err)
		}
		if err := sink.Display(msg); err != nil {
			return fmt.Errorf("display message from %s: %w", msg.Sender, err)
		}
	}
}

// Done is closed once the producer stopped, whatever the reason.
func (s *Session) Done() <-chan struct{} {
	return s.produced
}

// Run is Start followed by Consume.
func Run(ctx context.Context, log *slog.Logger, identity string,
	transport Transport, lines iter.Seq[string], sink Sink, capacity int) error {
	session, err := Start(ctx, log, identity, transport, lines, capacity)
	if err != nil {
		return err
	}
	return session.Consume(ctx, sink)
}

// Produce enqueues one message per non-blank line, tagged with identity,
// until lines are exhausted, the receiving end is dropped or ctx is done.
// The queue is closed on return. It reports how many messages were enqueued.
//
// A dropped receiver is not an error for the caller: it is logged and ends
// the producer only.
func Produce(ctx context.Context, log *slog.Logger, identity string,
	lines iter.Seq[string], queue *Queue) int {
	defer queue.Close()

	sent := 0
	for line := range lines {
		msg, ok := domain.NewChatMessage(identity, line)
		if !ok {
			continue
		}
		if err := queue.Send(ctx, msg); err != nil {
			if stderrors.Is(err, errors.ErrQueueClosed) {
				log.Warn("Remote side stopped reading, dropping console input",
					"identity", identity, "error", err)
			}
			return sent
		}
		sent++
	}
	return sent
}
