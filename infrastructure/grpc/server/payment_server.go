package server

import (
	"context"
	"log/slog"

	"rpc-lab/domain"
	pb "rpc-lab/proto/services"
	"rpc-lab/services"
)

type PaymentServer struct {
	pb.UnimplementedPaymentServiceServer
	paymentService services.IPaymentService
	log            *slog.Logger
}

func NewPaymentServer(log *slog.Logger, paymentService services.IPaymentService) *PaymentServer {
	return &PaymentServer{paymentService: paymentService, log: log}
}

func (s *PaymentServer) ProcessPayment(ctx context.Context, req *pb.PaymentRequest) (*pb.PaymentResponse, error) {
	s.log.Info("Received a payment request", "request", req.String())
	success := s.paymentService.ProcessPayment(ctx, domain.Payment{
		UserID: req.GetUserId(),
		Amount: req.GetAmount(),
	})
	return &pb.PaymentResponse{Success: success}, nil
}
