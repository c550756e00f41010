//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_chat.go -package=mocks
package chat

import (
	"context"

	"rpc-lab/domain"
)

// Transport opens the duplex exchange of a session. The implementation reads
// outbound until it is closed, and drops it as soon as it stops reading.
type Transport interface {
	Open(ctx context.Context, outbound *Queue) (Inbound, error)
}

// Inbound is the sequence of messages sent by the remote side.
// Next returns io.EOF once the remote closed its side.
type Inbound interface {
	Next() (domain.ChatMessage, error)
}

// Sink displays received messages.
type Sink interface {
	Display(msg domain.ChatMessage) error
}
