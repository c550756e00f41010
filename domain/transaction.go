package domain

import (
	"time"

	"github.com/google/uuid"
)

// Payment is the intent carried by a ProcessPayment call.
type Payment struct {
	UserID string  `validate:"required"`
	Amount float64 `validate:"gt=0"`
}

// Transaction is a payment once recorded in the ledger.
type Transaction struct {
	ID        uuid.UUID
	UserID    string
	Amount    float64
	CreatedAt time.Time
}

// NewTransaction records a payment at the given instant (stored in UTC).
func NewTransaction(p Payment, at time.Time) Transaction {
	return Transaction{
		ID:        uuid.New(),
		UserID:    p.UserID,
		Amount:    p.Amount,
		CreatedAt: at.UTC(),
	}
}
