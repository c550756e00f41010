package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"rpc-lab/domain"
	"rpc-lab/mocks"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPaymentService_RecordsTransaction(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockITransactionRepository(ctrl)
	service := NewPaymentService(log, repository)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	service.now = func() time.Time { return at }

	var stored domain.Transaction
	repository.EXPECT().Store(gomock.Any()).
		DoAndReturn(func(tx domain.Transaction) error {
			stored = tx
			return nil
		}).
		Times(1)

	ok := service.ProcessPayment(context.Background(), domain.Payment{UserID: "user_123", Amount: 100.0})

	req.True(ok)
	req.Equal("user_123", stored.UserID)
	req.Equal(100.0, stored.Amount)
	req.Equal(time.UTC, stored.CreatedAt.Location())
	req.True(at.Equal(stored.CreatedAt))
}

func TestPaymentService_LedgerFailureStillSucceeds(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockITransactionRepository(ctrl)
	service := NewPaymentService(log, repository)

	repository.EXPECT().Store(gomock.Any()).Return(errors.New("disk full")).Times(1)

	req.True(service.ProcessPayment(context.Background(), domain.Payment{UserID: "user_123", Amount: 1}))
}
