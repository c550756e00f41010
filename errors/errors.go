package errors

import (
	"context"
	stderrors "errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	// ErrConnection means a stream could not be established. The session is
	// lost and has to be restarted from scratch.
	ErrConnection = fmt.Errorf("connection error")
	// ErrQueueClosed is returned to a producer whose receiving end went away.
	// It only ends the producer, never the session.
	ErrQueueClosed = fmt.Errorf("queue closed")
	// ErrStream is a fault while reading the inbound sequence. It ends the session.
	ErrStream = fmt.Errorf("stream error")

	ErrInvalidPayment  = fmt.Errorf("invalid payment")
	ErrChatSessionBusy = fmt.Errorf("a chat session is already active")
)

// MapToGRPCError converts a domain error into a gRPC status error.
// Errors already carrying a status are returned unchanged.
func MapToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case stderrors.Is(err, ErrInvalidPayment):
		return status.Error(codes.InvalidArgument, err.Error())
	case stderrors.Is(err, ErrChatSessionBusy):
		return status.Error(codes.ResourceExhausted, err.Error())
	case stderrors.Is(err, ErrQueueClosed), stderrors.Is(err, ErrConnection):
		return status.Error(codes.Unavailable, err.Error())
	case stderrors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case stderrors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
