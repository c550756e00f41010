package client

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"rpc-lab/errors"

	"github.com/fullstorydev/grpchan"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

// Conn is a client connection whose calls are logged.
type Conn struct {
	grpc.ClientConnInterface
	cc *grpc.ClientConn
}

// Dial prepares a plaintext connection to target. The connection is lazy:
// an unreachable server surfaces as Unavailable on the first call.
func Dial(target string, log *slog.Logger, opts ...grpc.DialOption) (*Conn, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	cc, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errors.ErrConnection, target, err)
	}
	return &Conn{ClientConnInterface: withCallLogging(cc, log), cc: cc}, nil
}

func (c *Conn) Close() error {
	return c.cc.Close()
}

func withCallLogging(ch grpc.ClientConnInterface, log *slog.Logger) grpc.ClientConnInterface {
	return grpchan.InterceptClientConn(
		ch,
		func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
			start := time.Now()
			err := invoker(ctx, method, req, reply, cc, opts...)
			log.Debug("Call completed",
				"method", method,
				"code", status.Code(err).String(),
				"duration", time.Since(start))
			return err
		},
		func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
			stream, err := streamer(ctx, desc, cc, method, opts...)
			log.Debug("Stream opened", "method", method, "code", status.Code(err).String())
			return stream, err
		},
	)
}
