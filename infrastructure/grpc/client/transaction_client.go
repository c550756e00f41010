package client

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"rpc-lab/domain"
	pb "rpc-lab/proto/services"

	"github.com/google/uuid"
	"google.golang.org/grpc"
)

type TransactionClient struct {
	client pb.TransactionServiceClient
}

func NewTransactionClient(cc grpc.ClientConnInterface) *TransactionClient {
	return &TransactionClient{client: pb.NewTransactionServiceClient(cc)}
}

// History reads the whole transaction stream of userID.
func (c *TransactionClient) History(ctx context.Context, userID string) ([]domain.Transaction, error) {
	stream, err := c.client.GetTransactionHistory(ctx, &pb.TransactionRequest{UserId: userID})
	if err != nil {
		return nil, err
	}

	var txs []domain.Transaction
	for {
		resp, err := stream.Recv()
		if stderrors.Is(err, io.EOF) {
			return txs, nil
		}
		if err != nil {
			return txs, err
		}
		id, err := uuid.Parse(resp.GetTransactionId())
		if err != nil {
			return txs, fmt.Errorf("invalid transaction id %q: %w", resp.GetTransactionId(), err)
		}
		txs = append(txs, domain.Transaction{
			ID:        id,
			UserID:    resp.GetUserId(),
			Amount:    resp.GetAmount(),
			CreatedAt: resp.GetCreatedAt().AsTime(),
		})
	}
}
