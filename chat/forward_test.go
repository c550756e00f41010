package chat

import (
	"context"
	stderrors "errors"
	"testing"

	"rpc-lab/domain"
	"rpc-lab/errors"

	"github.com/stretchr/testify/require"
)

func TestForward_DrainsUntilClosed(t *testing.T) {
	req := require.New(t)
	queue := NewQueue(4)
	req.NoError(queue.Send(context.Background(), domain.ChatMessage{Payload: "one"}))
	req.NoError(queue.Send(context.Background(), domain.ChatMessage{Payload: "two"}))
	queue.Close()

	var sent []string
	err := Forward(queue, func(msg domain.ChatMessage) error {
		sent = append(sent, msg.Payload)
		return nil
	})

	req.NoError(err)
	req.Equal([]string{"one", "two"}, sent)
}

func TestForward_SendFailureDropsQueue(t *testing.T) {
	req := require.New(t)
	queue := NewQueue(4)
	req.NoError(queue.Send(context.Background(), domain.ChatMessage{Payload: "one"}))

	broken := stderrors.New("transport is closing")
	err := Forward(queue, func(domain.ChatMessage) error { return broken })

	req.ErrorIs(err, broken)
	req.ErrorIs(queue.Send(context.Background(), domain.ChatMessage{Payload: "two"}), errors.ErrQueueClosed)
}
