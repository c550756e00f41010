//go:generate go run go.uber.org/mock/mockgen -source=payment_service.go -destination=../mocks/mock_payment_service.go -package=mocks
package services

import (
	"context"
	"log/slog"
	"time"

	"rpc-lab/domain"
	"rpc-lab/infrastructure/storage"
)

type IPaymentService interface {
	ProcessPayment(ctx context.Context, payment domain.Payment) bool
}

type PaymentService struct {
	log        *slog.Logger
	repository storage.ITransactionRepository
	now        func() time.Time
}

func NewPaymentService(log *slog.Logger, repository storage.ITransactionRepository) *PaymentService {
	return &PaymentService{log: log, repository: repository, now: time.Now}
}

// ProcessPayment records the payment in the ledger and always reports success.
// A ledger failure only costs the history entry.
func (s *PaymentService) ProcessPayment(_ context.Context, payment domain.Payment) bool {
	tx := domain.NewTransaction(payment, s.now())
	if err := s.repository.Store(tx); err != nil {
		s.log.Error("Unable to record transaction",
			"user_id", payment.UserID,
			"amount", payment.Amount,
			"error", err)
	}
	return true
}
