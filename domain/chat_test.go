package domain

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestNewChatMessage(t *testing.T) {
	req := require.New(t)

	msg, ok := NewChatMessage("alice", "  hello there \t")
	req.True(ok)
	req.Equal(ChatMessage{Sender: "alice", Payload: "hello there"}, msg)

	for _, blank := range []string{"", " ", "\t\t", " \r"} {
		_, ok = NewChatMessage("alice", blank)
		req.False(ok, "blank line %q must not produce a message", blank)
	}
}

func TestNewChatMessage_RepairsInvalidUTF8(t *testing.T) {
	req := require.New(t)

	// Given a line typed in a Latin-1 terminal
	msg, ok := NewChatMessage("alice", "caf\xe9 au lait")

	req.True(ok)
	req.Equal("caf\uFFFD au lait", msg.Payload)
	req.True(utf8.ValidString(msg.Payload))
}

func TestNewTransaction_IsStoredInUTC(t *testing.T) {
	req := require.New(t)
	paris := time.FixedZone("CET", 3600)
	at := time.Date(2024, 5, 2, 10, 0, 0, 0, paris)

	tx := NewTransaction(Payment{UserID: "user_123", Amount: 100}, at)

	req.Equal("user_123", tx.UserID)
	req.Equal(100.0, tx.Amount)
	req.Equal(time.UTC, tx.CreatedAt.Location())
	req.True(at.Equal(tx.CreatedAt))
	req.NotEqual([16]byte{}, [16]byte(tx.ID))
}
