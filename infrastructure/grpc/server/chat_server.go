package server

import (
	"context"
	stderrors "errors"
	"io"
	"iter"
	"log/slog"
	"sync/atomic"

	"rpc-lab/chat"
	"rpc-lab/domain"
	"rpc-lab/errors"
	pb "rpc-lab/proto/services"

	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"
)

type ChatMode string

const (
	// EchoMode answers every inbound message with the same payload.
	EchoMode ChatMode = "echo"
	// ConsoleMode sends what the operator types on the server console.
	ConsoleMode ChatMode = "console"
)

type ChatServer struct {
	pb.UnimplementedChatServiceServer
	log      *slog.Logger
	identity string
	mode     ChatMode
	sink     chat.Sink
	lines    <-chan string
	capacity int
	busy     atomic.Bool
}

// NewChatServer builds the server side of the chat. lines is only read in ConsoleMode.
func NewChatServer(log *slog.Logger, identity string, mode ChatMode,
	sink chat.Sink, lines <-chan string, capacity int) *ChatServer {
	return &ChatServer{
		log:      log,
		identity: identity,
		mode:     mode,
		sink:     sink,
		lines:    lines,
		capacity: capacity,
	}
}

// Chat runs one duplex session. Only one session is served at a time.
// Inbound messages are displayed on the server sink while outbound ones go
// through a bounded queue drained by a forwarder goroutine.
func (s *ChatServer) Chat(stream pb.ChatService_ChatServer) error {
	if !s.busy.CompareAndSwap(false, true) {
		return errors.MapToGRPCError(errors.ErrChatSessionBusy)
	}
	defer s.busy.Store(false)

	sessionID := uuid.NewString()
	log := s.log.With("session_id", sessionID)
	if err := stream.SendHeader(metadata.Pairs(pb.ChatSessionHeader, sessionID)); err != nil {
		return err
	}
	log.Info("Chat session opened", "mode", s.mode)

	ctx, cancel := context.WithCancel(stream.Context())
	defer cancel()

	queue := chat.NewQueue(s.capacity)
	forwarded := make(chan error, 1)
	go func() {
		forwarded <- chat.Forward(queue, func(msg domain.ChatMessage) error {
			return stream.Send(toPbChatMessage(msg))
		})
	}()

	var produced chan struct{}
	if s.mode == ConsoleMode {
		produced = make(chan struct{})
		go func() {
			defer close(produced)
			chat.Produce(ctx, log, s.identity, consoleLines(ctx, s.lines), queue)
		}()
	}

	recvErr := s.receive(ctx, log, stream, queue)

	// Inbound is over: stop producing, then let the forwarder flush what is queued.
	cancel()
	if produced != nil {
		<-produced
	} else {
		queue.Close()
	}
	if recvErr != nil {
		queue.Drop()
	}
	sendErr := <-forwarded

	switch {
	case recvErr != nil:
		log.Warn("Chat session aborted", "error", recvErr)
		return recvErr
	case sendErr != nil && stream.Context().Err() == nil:
		log.Warn("Chat session ended with a send failure", "error", sendErr)
		return sendErr
	}
	log.Info("Chat session closed")
	return nil
}

// Active reports whether a chat session is being served.
func (s *ChatServer) Active() bool {
	return s.busy.Load()
}

// receive displays inbound messages until the client closes its side.
// In EchoMode it is also the producer of the outbound queue.
func (s *ChatServer) receive(ctx context.Context, log *slog.Logger,
	stream pb.ChatService_ChatServer, queue *chat.Queue) error {
	echoing := s.mode != ConsoleMode
	for {
		in, err := stream.Recv()
		if stderrors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if stream.Context().Err() != nil {
				log.Info("Client went away")
				return nil
			}
			return err
		}

		msg := fromPbChatMessage(in)
		if err := s.sink.Display(msg); err != nil {
			log.Error("Unable to display message", "sender", msg.Sender, "error", err)
		}
		if !echoing {
			continue
		}
		if err := queue.Send(ctx, domain.ChatMessage{Sender: s.identity, Payload: msg.Payload}); err != nil {
			log.Warn("Client stopped reading, echo disabled", "error", err)
			echoing = false
		}
	}
}

// consoleLines reads operator lines until the session ends.
func consoleLines(ctx context.Context, lines <-chan string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			select {
			case <-ctx.Done():
				return
			case line, ok := <-lines:
				if !ok || !yield(line) {
					return
				}
			}
		}
	}
}

func toPbChatMessage(msg domain.ChatMessage) *pb.ChatMessage {
	return &pb.ChatMessage{User: msg.Sender, Message: msg.Payload}
}

func fromPbChatMessage(msg *pb.ChatMessage) domain.ChatMessage {
	return domain.ChatMessage{Sender: msg.GetUser(), Payload: msg.GetMessage()}
}
