package chat_test

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"slices"
	"testing"
	"time"

	"rpc-lab/chat"
	"rpc-lab/domain"
	"rpc-lab/errors"
	"rpc-lab/mocks"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const identity = "user_123"

// drain reads everything enqueued until the producer closes the queue.
func drain(queue *chat.Queue, got *[]domain.ChatMessage, drained chan struct{}) {
	go func() {
		defer close(drained)
		for msg := range queue.Receive() {
			*got = append(*got, msg)
		}
	}()
}

// endless yields line until the consumer of the sequence stops, then closes stopped.
func endless(line string, stopped chan struct{}) func(yield func(string) bool) {
	return func(yield func(string) bool) {
		defer close(stopped)
		for yield(line) {
		}
	}
}

func TestSession_ForwardsNonBlankLinesInOrder(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	transport := mocks.NewMockTransport(ctrl)
	inbound := mocks.NewMockInbound(ctrl)
	sink := mocks.NewMockSink(ctrl)

	var got []domain.ChatMessage
	drained := make(chan struct{})
	transport.EXPECT().Open(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, queue *chat.Queue) (chat.Inbound, error) {
			drain(queue, &got, drained)
			return inbound, nil
		}).
		Times(1)
	// Given the server closes its side once ours is done
	inbound.EXPECT().Next().
		DoAndReturn(func() (domain.ChatMessage, error) {
			<-drained
			return domain.ChatMessage{}, io.EOF
		}).
		Times(1)
	sink.EXPECT().Display(gomock.Any()).Times(0)

	// When the operator types two real lines around blank ones
	lines := slices.Values([]string{"hello", "", "  ", "bye"})
	err := chat.Run(context.Background(), log, identity, transport, lines, sink, domain.DefaultQueueCapacity)

	// Then exactly two messages left, in typing order
	req.NoError(err)
	req.Equal([]domain.ChatMessage{
		{Sender: identity, Payload: "hello"},
		{Sender: identity, Payload: "bye"},
	}, got)
}

func TestSession_DisplaysInboundInReceiveOrder(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	transport := mocks.NewMockTransport(ctrl)
	inbound := mocks.NewMockInbound(ctrl)
	sink := mocks.NewMockSink(ctrl)

	first := domain.ChatMessage{Sender: "server", Payload: "welcome"}
	second := domain.ChatMessage{Sender: "server", Payload: "still there?"}

	transport.EXPECT().Open(gomock.Any(), gomock.Any()).Return(inbound, nil).Times(1)
	gomock.InOrder(
		inbound.EXPECT().Next().Return(first, nil),
		sink.EXPECT().Display(first).Return(nil),
		inbound.EXPECT().Next().Return(second, nil),
		sink.EXPECT().Display(second).Return(nil),
		inbound.EXPECT().Next().Return(domain.ChatMessage{}, io.EOF),
	)

	err := chat.Run(context.Background(), log, identity, transport, slices.Values([]string{}), sink, 4)

	// Then the end of the inbound sequence is a normal termination
	req.NoError(err)
}

func TestSession_StreamFaultIsSurfaced(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	transport := mocks.NewMockTransport(ctrl)
	inbound := mocks.NewMockInbound(ctrl)
	sink := mocks.NewMockSink(ctrl)

	transport.EXPECT().Open(gomock.Any(), gomock.Any()).Return(inbound, nil).Times(1)
	inbound.EXPECT().Next().
		Return(domain.ChatMessage{}, status.Error(codes.Unavailable, "connection reset")).
		Times(1)

	err := chat.Run(context.Background(), log, identity, transport, slices.Values([]string{}), sink, 4)

	req.ErrorIs(err, errors.ErrStream)
	req.False(stderrors.Is(err, errors.ErrConnection))
	req.Equal(codes.Unavailable, status.Code(err))
}

func TestStart_ConnectionErrorStopsProducer(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	transport := mocks.NewMockTransport(ctrl)

	refused := status.Error(codes.Unavailable, "connection refused")
	transport.EXPECT().Open(gomock.Any(), gomock.Any()).Return(nil, refused).Times(1)

	stopped := make(chan struct{})
	session, err := chat.Start(context.Background(), log, identity, transport, endless("ping", stopped), 1)

	req.Nil(session)
	req.ErrorIs(err, errors.ErrConnection)
	select {
	case <-stopped:
		// Then the producer gave up on the dropped queue
	case <-time.After(time.Second):
		req.Fail("producer should stop once the stream could not be opened")
	}
}

func TestSession_ReceiverDroppedMidSession(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	transport := mocks.NewMockTransport(ctrl)
	inbound := mocks.NewMockInbound(ctrl)
	sink := mocks.NewMockSink(ctrl)

	reply := domain.ChatMessage{Sender: "server", Payload: "got your first line, bye"}
	dropped := make(chan struct{})
	transport.EXPECT().Open(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, queue *chat.Queue) (chat.Inbound, error) {
			// Given a remote that reads one message then stops reading
			go func() {
				<-queue.Receive()
				queue.Drop()
				close(dropped)
			}()
			return inbound, nil
		}).
		Times(1)
	gomock.InOrder(
		inbound.EXPECT().Next().DoAndReturn(func() (domain.ChatMessage, error) {
			<-dropped
			return reply, nil
		}),
		sink.EXPECT().Display(reply).Return(nil),
		inbound.EXPECT().Next().Return(domain.ChatMessage{}, io.EOF),
	)

	stopped := make(chan struct{})
	session, err := chat.Start(context.Background(), log, identity, transport, endless("again", stopped), 2)
	req.NoError(err)

	// Then the consumer keeps draining what the server still sends
	req.NoError(session.Consume(context.Background(), sink))

	// And the producer ended quietly
	select {
	case <-session.Done():
	case <-time.After(time.Second):
		req.Fail("producer should stop after the receiver was dropped")
	}
	<-stopped
}

func TestSession_CanceledContextIsNotAFault(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	transport := mocks.NewMockTransport(ctrl)
	inbound := mocks.NewMockInbound(ctrl)
	sink := mocks.NewMockSink(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	transport.EXPECT().Open(gomock.Any(), gomock.Any()).Return(inbound, nil).Times(1)
	inbound.EXPECT().Next().
		DoAndReturn(func() (domain.ChatMessage, error) {
			cancel()
			return domain.ChatMessage{}, status.Error(codes.Canceled, "context canceled")
		}).
		Times(1)

	req.NoError(chat.Run(ctx, log, identity, transport, slices.Values([]string{}), sink, 4))
}

func TestProduce_StopsWhenContextIsDone(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	queue := chat.NewQueue(1)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	stopped := make(chan struct{})
	sent := chat.Produce(ctx, log, identity, endless("spam", stopped), queue)

	// Then only what fits in the queue was accepted, and the queue got closed
	req.Equal(1, sent)
	<-stopped
	msg, open := <-queue.Receive()
	req.True(open)
	req.Equal("spam", msg.Payload)
	_, open = <-queue.Receive()
	req.False(open)
}

func TestConsume_EndOfSessionStopsProducer(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	transport := mocks.NewMockTransport(ctrl)
	inbound := mocks.NewMockInbound(ctrl)
	sink := mocks.NewMockSink(ctrl)

	// Given a transport that never reads the outbound queue
	transport.EXPECT().Open(gomock.Any(), gomock.Any()).Return(inbound, nil).Times(1)
	inbound.EXPECT().Next().
		Return(domain.ChatMessage{}, status.Error(codes.Unavailable, "connection reset")).
		Times(1)

	stopped := make(chan struct{})
	session, err := chat.Start(context.Background(), log, identity, transport, endless("still typing", stopped), 1)
	req.NoError(err)

	// When the inbound side ends with a fault
	req.ErrorIs(session.Consume(context.Background(), sink), errors.ErrStream)

	// Then the producer stops without waiting for the end of input
	select {
	case <-session.Done():
	case <-time.After(time.Second):
		req.Fail("producer should stop once the session is over")
	}
	<-stopped
}
