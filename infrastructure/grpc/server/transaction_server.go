package server

import (
	"log/slog"

	"rpc-lab/domain"
	"rpc-lab/errors"
	pb "rpc-lab/proto/services"
	"rpc-lab/services"

	"google.golang.org/protobuf/types/known/timestamppb"
)

type TransactionServer struct {
	pb.UnimplementedTransactionServiceServer
	transactionService services.ITransactionService
	log                *slog.Logger
}

func NewTransactionServer(log *slog.Logger, transactionService services.ITransactionService) *TransactionServer {
	return &TransactionServer{transactionService: transactionService, log: log}
}

// GetTransactionHistory streams the ledger of the requested user, oldest first.
// An unknown user gets an empty stream.
func (s *TransactionServer) GetTransactionHistory(req *pb.TransactionRequest, stream pb.TransactionService_GetTransactionHistoryServer) error {
	sent := 0
	err := s.transactionService.History(stream.Context(), req.GetUserId(), func(tx domain.Transaction) error {
		if err := stream.Send(toTransactionResponse(tx)); err != nil {
			return err
		}
		sent++
		return nil
	})
	if err != nil {
		s.log.Warn("Transaction history interrupted",
			"user_id", req.GetUserId(),
			"sent", sent,
			"error", err)
		return errors.MapToGRPCError(err)
	}
	s.log.Debug("Transaction history sent", "user_id", req.GetUserId(), "count", sent)
	return nil
}

func toTransactionResponse(tx domain.Transaction) *pb.TransactionResponse {
	return &pb.TransactionResponse{
		TransactionId: tx.ID.String(),
		UserId:        tx.UserID,
		Amount:        tx.Amount,
		CreatedAt:     timestamppb.New(tx.CreatedAt),
	}
}
