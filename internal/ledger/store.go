// Package ledger owns the authoritative transaction collection and the
// record/delete flows around it. All derived analytics live in core; this
// package keeps persistence and classification side effects at the boundary.
package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"zenledger/internal/core"
	applog "zenledger/internal/log"
)

// Store holds the ordered transaction collection. Every mutation is written
// through the injected Repository; reads hand out defensive copies so the
// analytics layer can never mutate the authoritative slice.
type Store struct {
	mu     sync.Mutex
	repo   Repository
	txs    []core.Transaction
	logger *applog.Logger
}

// NewStore loads the persisted collection through repo. A load error or
// malformed snapshot is treated as an empty ledger, never as a fatal
// condition.
func NewStore(ctx context.Context, repo Repository) *Store {
	s := &Store{repo: repo, logger: applog.Component(applog.ComponentLedger)}
	txs, err := repo.LoadTransactions(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed loading transactions, starting empty", applog.FieldError, err)
		return s
	}
	s.txs = txs
	return s
}

// Add assigns a fresh id, appends the transaction and persists the new
// snapshot. The append is rolled back if persisting fails.
func (s *Store) Add(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	tx.ID = uuid.NewString()
	tx.Date = tx.Date.UTC()
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("validate transaction: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.txs = append(s.txs, tx)
	if err := s.repo.SaveTransactions(ctx, s.txs); err != nil {
		s.txs = s.txs[:len(s.txs)-1]
		return core.Transaction{}, fmt.Errorf("save transactions: %w", err)
	}
	return tx, nil
}

// Delete removes the transaction with the given id and persists the shrunken
// snapshot. Deleting an unknown id is a no-op: nothing changes, nothing is
// saved, no error.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, tx := range s.txs {
		if tx.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	removed := s.txs[idx]
	next := make([]core.Transaction, 0, len(s.txs)-1)
	next = append(next, s.txs[:idx]...)
	next = append(next, s.txs[idx+1:]...)

	if err := s.repo.SaveTransactions(ctx, next); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	s.txs = next
	s.logger.InfoContext(ctx, "Transaction deleted", applog.FieldTransactionID, removed.ID)
	return nil
}

// Contains reports whether a transaction with the given id is stored.
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tx := range s.txs {
		if tx.ID == id {
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the current collection in insertion order.
func (s *Store) Snapshot() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.txs))
	copy(out, s.txs)
	return out
}

// Len returns the number of stored transactions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.txs)
}
