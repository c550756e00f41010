//go:generate go run go.uber.org/mock/mockgen -source=transaction_repository.go -destination=../../mocks/mock_transaction_repository.go -package=mocks
package storage

import (
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"rpc-lab/domain"
	pb "rpc-lab/proto/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const (
	transactionPrefix = "tx:"
	// sequenceKey lives outside the tx: prefix so scans never see it.
	sequenceKey       = "seq:tx"
	sequenceBandwidth = 128
)

type ITransactionRepository interface {
	Store(tx domain.Transaction) error
	ListByUser(userID string, fn func(domain.Transaction) error) error
	Count(userID string) (int, error)
}

// TransactionRepository is the payment ledger.
// Keys are tx:{user}:{unix nano}:{seq}:{id} so a prefix scan is chronological
// per user, and payments stamped with the same instant keep their insertion order.
type TransactionRepository struct {
	db  *badger.DB
	log *slog.Logger

	mu  sync.Mutex
	seq *badger.Sequence
}

func NewTransactionRepository(db *badger.DB, log *slog.Logger) *TransactionRepository {
	return &TransactionRepository{db: db, log: log}
}

// OpenInMemory opens a Badger instance that lives as long as the process.
func OpenInMemory() (*badger.DB, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory ledger: %w", err)
	}
	return db, nil
}

func (r *TransactionRepository) Store(tx domain.Transaction) error {
	data, err := toPbTransaction(tx).MarshalWire()
	if err != nil {
		return fmt.Errorf("failed to marshal transaction %s: %w", tx.ID, err)
	}

	seq, err := r.nextSequence()
	if err != nil {
		return fmt.Errorf("failed to number transaction %s: %w", tx.ID, err)
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(transactionKey(tx, seq), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store transaction %s: %w", tx.ID, err)
	}
	r.log.Debug("Transaction stored", "transaction_id", tx.ID, "user_id", tx.UserID)
	return nil
}

// ListByUser visits the user's transactions, oldest first.
// Iteration stops at the first error returned by fn.
func (r *TransactionRepository) ListByUser(userID string, fn func(domain.Transaction) error) error {
	var values [][]byte
	prefix := userPrefix(userID)

	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			v, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			values = append(values, v)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to scan ledger of %s: %w", userID, err)
	}

	// Visiting happens outside the read transaction, fn may block on the network.
	for _, v := range values {
		var msg pb.TransactionResponse
		if err := msg.UnmarshalWire(v); err != nil {
			return fmt.Errorf("failed to unmarshal transaction: %w", err)
		}
		tx, err := fromPbTransaction(&msg)
		if err != nil {
			return err
		}
		if err := fn(tx); err != nil {
			return err
		}
	}
	return nil
}

// Close hands back the unused part of the sequence lease. The database itself
// is closed by its owner.
func (r *TransactionRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seq == nil {
		return nil
	}
	err := r.seq.Release()
	r.seq = nil
	return err
}

func (r *TransactionRepository) nextSequence() (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seq == nil {
		seq, err := r.db.GetSequence([]byte(sequenceKey), sequenceBandwidth)
		if err != nil {
			return 0, err
		}
		r.seq = seq
	}
	return r.seq.Next()
}

func (r *TransactionRepository) Count(userID string) (int, error) {
	count := 0
	prefix := userPrefix(userID)
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// userPrefix escapes the user id so that "a" never matches the keys of "a:b".
func userPrefix(userID string) []byte {
	return []byte(transactionPrefix + url.QueryEscape(userID) + ":")
}

func transactionKey(tx domain.Transaction, seq uint64) []byte {
	return fmt.Appendf(userPrefix(tx.UserID), "%019d:%020d:%s", tx.CreatedAt.UnixNano(), seq, tx.ID)
}

func toPbTransaction(tx domain.Transaction) *pb.TransactionResponse {
	return &pb.TransactionResponse{
		TransactionId: tx.ID.String(),
		UserId:        tx.UserID,
		Amount:        tx.Amount,
		CreatedAt:     timestamppb.New(tx.CreatedAt),
	}
}

func fromPbTransaction(msg *pb.TransactionResponse) (domain.Transaction, error) {
	id, err := uuid.Parse(msg.GetTransactionId())
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("corrupted transaction id %q: %w", msg.GetTransactionId(), err)
	}
	return domain.Transaction{
		ID:        id,
		UserID:    msg.GetUserId(),
		Amount:    msg.GetAmount(),
		CreatedAt: msg.GetCreatedAt().AsTime(),
	}, nil
}
