package errors

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestMapToGRPCError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"invalid payment", fmt.Errorf("amount: %w", ErrInvalidPayment), codes.InvalidArgument},
		{"busy chat", ErrChatSessionBusy, codes.ResourceExhausted},
		{"queue closed", ErrQueueClosed, codes.Unavailable},
		{"canceled", fmt.Errorf("recv: %w", context.Canceled), codes.Canceled},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"unknown", fmt.Errorf("disk on fire"), codes.Internal},
		{"already a status", status.Error(codes.NotFound, "gone"), codes.NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			mapped := MapToGRPCError(tt.err)
			req.Equal(tt.code, status.Code(mapped))
		})
	}
}

func TestMapToGRPCError_Nil(t *testing.T) {
	require.NoError(t, MapToGRPCError(nil))
}
