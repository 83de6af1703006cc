package storage

import (
	"context"
	"sync"

	"zenledger/internal/core"
)

// MemoryRepository keeps both slots in process memory. Default backend for
// development and the fixture of choice in tests.
type MemoryRepository struct {
	mu       sync.Mutex
	txs      []core.Transaction
	settings core.AppSettings
	hasSet   bool
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) LoadTransactions(context.Context) ([]core.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.Transaction, len(r.txs))
	copy(out, r.txs)
	return out, nil
}

func (r *MemoryRepository) SaveTransactions(_ context.Context, txs []core.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs = append([]core.Transaction(nil), txs...)
	return nil
}

func (r *MemoryRepository) LoadSettings(context.Context) (core.AppSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hasSet {
		return core.DefaultSettings(), nil
	}
	return r.settings, nil
}

func (r *MemoryRepository) SaveSettings(_ context.Context, s core.AppSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = s
	r.hasSet = true
	return nil
}
