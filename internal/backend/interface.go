// Package backend selects and constructs the persistence layer from
// configuration.
package backend

import (
	"context"

	"zenledger/internal/ledger"
)

// Repositories bundles the stores a backend provides.
type Repositories interface {
	ledger.Repository
	ledger.SettingsRepository
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result contains the constructed repositories and optional cleanup.
type Result struct {
	Repos   Repositories
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type Type

	// File backend
	TransactionsFile string
	SettingsFile     string

	// SQLite backend
	SQLiteDBPath string
}

// Type represents the kind of persistence backend.
type Type string

const (
	MemoryBackend Type = "memory"
	FileBackend   Type = "file"
	SQLiteBackend Type = "sqlite"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, FileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
