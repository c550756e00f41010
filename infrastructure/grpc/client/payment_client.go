package client

import (
	"context"
	"fmt"

	"rpc-lab/domain"
	"rpc-lab/errors"
	pb "rpc-lab/proto/services"

	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc"
)

type PaymentClient struct {
	client   pb.PaymentServiceClient
	validate *validator.Validate
}

func NewPaymentClient(cc grpc.ClientConnInterface) *PaymentClient {
	return &PaymentClient{
		client:   pb.NewPaymentServiceClient(cc),
		validate: validator.New(),
	}
}

// Pay submits the payment and reports whether the server accepted it.
// A payment without user or with a non-positive amount never leaves the client.
func (c *PaymentClient) Pay(ctx context.Context, payment domain.Payment) (bool, error) {
	if err := c.validate.Struct(payment); err != nil {
		return false, fmt.Errorf("%w: %w", errors.ErrInvalidPayment, err)
	}
	resp, err := c.client.ProcessPayment(ctx, &pb.PaymentRequest{
		Amount: payment.Amount,
		UserId: payment.UserID,
	})
	if err != nil {
		return false, err
	}
	return resp.GetSuccess(), nil
}
