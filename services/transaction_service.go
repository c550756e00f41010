//go:generate go run go.uber.org/mock/mockgen -source=transaction_service.go -destination=../mocks/mock_transaction_service.go -package=mocks
package services

import (
	"context"

	"rpc-lab/domain"
	"rpc-lab/infrastructure/storage"
)

type ITransactionService interface {
	History(ctx context.Context, userID string, fn func(domain.Transaction) error) error
}

type TransactionService struct {
	repository storage.ITransactionRepository
}

func NewTransactionService(repository storage.ITransactionRepository) *TransactionService {
	return &TransactionService{repository: repository}
}

// History replays the ledger of userID, oldest first, and stops early once ctx is done.
func (s *TransactionService) History(ctx context.Context, userID string, fn func(domain.Transaction) error) error {
	return s.repository.ListByUser(userID, func(tx domain.Transaction) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(tx)
	})
}
