package e2e

import (
	"context"
	"slices"
	"sync"
	"testing"

	"rpc-lab/chat"
	"rpc-lab/domain"
	"rpc-lab/infrastructure/grpc/client"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type testPaymentChatSuite struct {
	BaseGrpcSuite
}

func TestPaymentChatSuite(t *testing.T) {
	suite.Run(t, &testPaymentChatSuite{})
}

type transcript struct {
	mu       sync.Mutex
	messages []domain.ChatMessage
}

func (t *transcript) Display(msg domain.ChatMessage) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, msg)
	return nil
}

func (s *testPaymentChatSuite) TestClientFlow() {
	// A fresh user keeps the history assertions valid against a shared server
	userID := "user_" + uuid.NewString()[:8]

	s.Run("Step 1: Process a payment", func() {
		s.WithConn("Pay 100.0", func(ctx context.Context, conn *client.Conn) {
			success, err := client.NewPaymentClient(conn).Pay(ctx, domain.Payment{UserID: userID, Amount: 100.0})
			s.Require().NoError(err)
			s.Require().True(success)
		})
	})

	s.Run("Step 2: Stream the transaction history", func() {
		s.WithConn("History", func(ctx context.Context, conn *client.Conn) {
			txs, err := client.NewTransactionClient(conn).History(ctx, userID)
			s.Require().NoError(err)
			s.Require().Len(txs, 1)
			s.Require().Equal(userID, txs[0].UserID)
			s.Require().Equal(100.0, txs[0].Amount)
		})
	})

	s.Run("Step 3: Chat with the echo server", func() {
		s.WithConn("Chat", func(ctx context.Context, conn *client.Conn) {
			sink := &transcript{}
			lines := slices.Values([]string{"hello", "", "  ", "bye"})

			err := chat.Run(ctx, s.log, userID, client.NewChatTransport(s.log, conn), lines, sink, 4)

			s.Require().NoError(err)
			s.Require().Equal([]string{"hello", "bye"}, payloads(sink.messages))
		})
	})

	s.Run("Step 4: Invalid payments never reach the server", func() {
		s.WithConn("Invalid payment", func(ctx context.Context, conn *client.Conn) {
			_, err := client.NewPaymentClient(conn).Pay(ctx, domain.Payment{UserID: userID, Amount: 0})
			s.Require().Error(err)

			txs, err := client.NewTransactionClient(conn).History(ctx, userID)
			s.Require().NoError(err)
			s.Require().Len(txs, 1)
		})
	})
}

func payloads(messages []domain.ChatMessage) []string {
	return lo.Map(messages, func(msg domain.ChatMessage, _ int) string { return msg.Payload })
}
