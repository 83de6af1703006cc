package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"zenledger/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists both slots in a single SQLite database. The
// transaction snapshot is saved replace-all inside one database transaction,
// mirroring the key-value semantics of the file backend.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, recorded_at, description, amount_cents, category, type
		 FROM transactions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var tx core.Transaction
		var recordedAt string
		if err := rows.Scan(&tx.ID, &recordedAt, &tx.Description, &tx.Amount.Cents, &tx.Category, &tx.Type); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Date, err = time.Parse(time.RFC3339, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("parse recorded_at %q: %w", recordedAt, err)
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) SaveTransactions(ctx context.Context, txs []core.Transaction) error {
	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer dbtx.Rollback()

	if _, err := dbtx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	for i, tx := range txs {
		_, err := dbtx.ExecContext(ctx,
			`INSERT INTO transactions (id, recorded_at, description, amount_cents, category, type, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			tx.ID, tx.Date.UTC().Format(time.RFC3339), tx.Description, tx.Amount.Cents,
			tx.Category, string(tx.Type), i)
		if err != nil {
			return fmt.Errorf("insert transaction %s: %w", tx.ID, err)
		}
	}
	if err := dbtx.Commit(); err != nil {
		return fmt.Errorf("commit transactions: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) LoadSettings(ctx context.Context) (core.AppSettings, error) {
	var s core.AppSettings
	err := r.db.QueryRowContext(ctx,
		`SELECT language, theme FROM settings WHERE id = 1`).Scan(&s.Language, &s.Theme)
	if errors.Is(err, sql.ErrNoRows) {
		return core.DefaultSettings(), nil
	}
	if err != nil {
		return core.DefaultSettings(), fmt.Errorf("query settings: %w", err)
	}
	if s.Validate() != nil {
		return core.DefaultSettings(), nil
	}
	return s, nil
}

func (r *SQLiteRepository) SaveSettings(ctx context.Context, s core.AppSettings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("validate settings: %w", err)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (id, language, theme) VALUES (1, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET language = excluded.language, theme = excluded.theme`,
		s.Language, s.Theme)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
