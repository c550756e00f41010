package services

import (
	"context"
	"testing"
	"time"

	"rpc-lab/domain"
	"rpc-lab/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestTransactionService_History(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockITransactionRepository(ctrl)
	service := NewTransactionService(repository)

	ledger := []domain.Transaction{
		domain.NewTransaction(domain.Payment{UserID: "user_123", Amount: 10}, time.Now()),
		domain.NewTransaction(domain.Payment{UserID: "user_123", Amount: 20}, time.Now()),
	}
	repository.EXPECT().ListByUser("user_123", gomock.Any()).
		DoAndReturn(func(_ string, fn func(domain.Transaction) error) error {
			for _, tx := range ledger {
				if err := fn(tx); err != nil {
					return err
				}
			}
			return nil
		}).
		Times(1)

	var got []domain.Transaction
	err := service.History(context.Background(), "user_123", func(tx domain.Transaction) error {
		got = append(got, tx)
		return nil
	})

	req.NoError(err)
	req.Equal(ledger, got)
}

func TestTransactionService_HistoryStopsOnCanceledContext(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockITransactionRepository(ctrl)
	service := NewTransactionService(repository)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repository.EXPECT().ListByUser("user_123", gomock.Any()).
		DoAndReturn(func(_ string, fn func(domain.Transaction) error) error {
			return fn(domain.Transaction{UserID: "user_123"})
		}).
		Times(1)

	err := service.History(ctx, "user_123", func(domain.Transaction) error {
		req.Fail("no transaction should be visited after cancellation")
		return nil
	})

	req.ErrorIs(err, context.Canceled)
}
