package ledger

import (
	"context"

	"zenledger/internal/core"
)

// Ports for outbound adapters.
type (
	// Repository is the persistence slot for the transaction collection.
	// Load returns the empty collection when nothing usable is persisted;
	// Save replaces the whole snapshot.
	Repository interface {
		LoadTransactions(ctx context.Context) ([]core.Transaction, error)
		SaveTransactions(ctx context.Context, txs []core.Transaction) error
	}

	// SettingsRepository is the independent slot for app settings.
	SettingsRepository interface {
		LoadSettings(ctx context.Context) (core.AppSettings, error)
		SaveSettings(ctx context.Context, s core.AppSettings) error
	}

	// EventPublisher announces ledger mutations to interested consumers
	// (e.g. the export worker). Publish failures never fail a mutation.
	EventPublisher interface {
		PublishLedgerEvent(ctx context.Context, action, transactionID string) error
	}
)

// Event actions carried on the bus.
const (
	EventCreated = "created"
	EventDeleted = "deleted"
)
