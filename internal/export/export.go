// Package export writes date-stamped JSON snapshots of the ledger.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"zenledger/internal/core"
)

// Snapshot is the full exported state of the ledger.
type Snapshot struct {
	ExportedAt   time.Time          `json:"exported_at"`
	Transactions []core.Transaction `json:"transactions"`
	Settings     core.AppSettings   `json:"settings"`
}

// Exporter writes ledger snapshots to a directory, one file per day. The
// worker overwrites the day's file on every event, so the newest snapshot
// always wins.
type Exporter struct {
	dir    string
	prefix string
}

func NewExporter(dir, prefix string) *Exporter {
	if prefix == "" {
		prefix = "zenledger"
	}
	return &Exporter{dir: dir, prefix: prefix}
}

// Filename returns the snapshot filename for the given time, in UTC.
func (e *Exporter) Filename(t time.Time) string {
	return fmt.Sprintf("%s_%s.json", e.prefix, t.UTC().Format("2006-01-02"))
}

// MarshalSnapshot stamps and serializes a snapshot without writing it.
func MarshalSnapshot(txs []core.Transaction, settings core.AppSettings) ([]byte, error) {
	snap := Snapshot{
		ExportedAt:   time.Now().UTC(),
		Transactions: txs,
		Settings:     settings,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// WriteSnapshot writes the snapshot for the current day. The file is written
// to a temp path first so readers never see a partial snapshot.
func (e *Exporter) WriteSnapshot(txs []core.Transaction, settings core.AppSettings) (string, error) {
	data, err := MarshalSnapshot(txs, settings)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(e.dir, e.Filename(time.Now()))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("finalize snapshot: %w", err)
	}
	return path, nil
}
