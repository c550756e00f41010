package client

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"

	"rpc-lab/chat"
	"rpc-lab/domain"
	pb "rpc-lab/proto/services"

	"google.golang.org/grpc"
)

// ChatTransport opens ChatService.Chat streams for a chat.Session.
type ChatTransport struct {
	client pb.ChatServiceClient
	log    *slog.Logger
}

func NewChatTransport(log *slog.Logger, cc grpc.ClientConnInterface) *ChatTransport {
	return &ChatTransport{client: pb.NewChatServiceClient(cc), log: log}
}

// Open returns once the server sent its response headers, which it does as
// soon as it accepted the session. A refused session fails here.
//
// The outbound queue is forwarded on its own goroutine; the send side of the
// stream is half-closed once the queue is closed.
func (t *ChatTransport) Open(ctx context.Context, outbound *chat.Queue) (chat.Inbound, error) {
	stream, err := t.client.Chat(ctx)
	if err != nil {
		return nil, err
	}
	header, err := stream.Header()
	if err != nil {
		return nil, err
	}
	if header == nil {
		// The stream ended before any header, Recv carries the reason.
		_, err := stream.Recv()
		if err == nil || stderrors.Is(err, io.EOF) {
			err = fmt.Errorf("chat session closed before being accepted: %w", io.ErrUnexpectedEOF)
		}
		return nil, err
	}
	log := t.log.With("session_id", first(header.Get(pb.ChatSessionHeader)))
	log.Info("Chat session accepted")

	go func() {
		err := chat.Forward(outbound, func(msg domain.ChatMessage) error {
			return stream.Send(&pb.ChatMessage{User: msg.Sender, Message: msg.Payload})
		})
		if err != nil {
			log.Warn("Outbound stream broken", "error", err)
			return
		}
		if err := stream.CloseSend(); err != nil {
			log.Warn("Unable to half-close the stream", "error", err)
		}
	}()

	return chatInbound{stream: stream}, nil
}

type chatInbound struct {
	stream pb.ChatService_ChatClient
}

func (i chatInbound) Next() (domain.ChatMessage, error) {
	msg, err := i.stream.Recv()
	if err != nil {
		return domain.ChatMessage{}, err
	}
	return domain.ChatMessage{Sender: msg.GetUser(), Payload: msg.GetMessage()}, nil
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
