// Package storage provides the repository backends behind the ledger ports:
// JSON files, SQLite, and an in-memory store for development and tests.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"zenledger/internal/core"
	applog "zenledger/internal/log"
)

// FileRepository persists the two key-value slots as JSON files: one for the
// transaction collection, one for settings. Writes go through a temp file
// and rename so a crash never leaves a half-written slot.
type FileRepository struct {
	transactionsPath string
	settingsPath     string
	logger           *applog.Logger
}

func NewFileRepository(transactionsPath, settingsPath string) (*FileRepository, error) {
	for _, p := range []string{transactionsPath, settingsPath} {
		dir := filepath.Dir(p)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory %s: %w", dir, err)
		}
	}
	return &FileRepository{
		transactionsPath: transactionsPath,
		settingsPath:     settingsPath,
		logger:           applog.Component(applog.ComponentStorage),
	}, nil
}

// LoadTransactions reads the transactions slot. A missing or malformed file
// is treated as an empty ledger, never as an error.
func (r *FileRepository) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	data, err := os.ReadFile(r.transactionsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read transactions file: %w", err)
	}

	var txs []core.Transaction
	if err := json.Unmarshal(data, &txs); err != nil {
		r.logger.WarnContext(ctx, "Malformed transactions file, treating as empty",
			"path", r.transactionsPath,
			applog.FieldError, err)
		return nil, nil
	}
	return txs, nil
}

func (r *FileRepository) SaveTransactions(_ context.Context, txs []core.Transaction) error {
	if txs == nil {
		txs = []core.Transaction{}
	}
	data, err := json.MarshalIndent(txs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal transactions: %w", err)
	}
	return writeAtomic(r.transactionsPath, data)
}

// LoadSettings reads the settings slot, falling back to defaults when the
// file is missing or malformed.
func (r *FileRepository) LoadSettings(ctx context.Context) (core.AppSettings, error) {
	data, err := os.ReadFile(r.settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return core.DefaultSettings(), nil
		}
		return core.DefaultSettings(), fmt.Errorf("read settings file: %w", err)
	}

	var s core.AppSettings
	if err := json.Unmarshal(data, &s); err != nil || s.Validate() != nil {
		r.logger.WarnContext(ctx, "Malformed settings file, using defaults",
			"path", r.settingsPath,
			applog.FieldError, err)
		return core.DefaultSettings(), nil
	}
	return s, nil
}

func (r *FileRepository) SaveSettings(_ context.Context, s core.AppSettings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("validate settings: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	return writeAtomic(r.settingsPath, data)
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
