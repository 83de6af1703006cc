package backend

import (
	"context"
	"path/filepath"
	"testing"

	"zenledger/internal/config"
)

func TestTypeIsValid(t *testing.T) {
	tests := []struct {
		typ  Type
		want bool
	}{
		{MemoryBackend, true},
		{FileBackend, true},
		{SQLiteBackend, true},
		{Type("sheets"), false},
		{Type(""), false},
	}

	for _, tt := range tests {
		if got := tt.typ.IsValid(); got != tt.want {
			t.Errorf("Type(%q).IsValid() = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func TestFromAppConfig(t *testing.T) {
	cfg, err := FromAppConfig(&config.Config{
		DataBackend:      "file",
		TransactionsFile: "/tmp/tx.json",
		SettingsFile:     "/tmp/settings.json",
		SQLiteDBPath:     "/tmp/db.sqlite",
	})
	if err != nil {
		t.Fatalf("FromAppConfig: %v", err)
	}
	if cfg.Type != FileBackend {
		t.Errorf("Type = %v, want file", cfg.Type)
	}
	if cfg.TransactionsFile != "/tmp/tx.json" {
		t.Errorf("TransactionsFile = %v", cfg.TransactionsFile)
	}

	if _, err := FromAppConfig(nil); err == nil {
		t.Error("expected error for nil app config")
	}
	if _, err := FromAppConfig(&config.Config{DataBackend: "sheets"}); err == nil {
		t.Error("expected error for unknown backend type")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"memory", Config{Type: MemoryBackend}, false},
		{"file ok", Config{Type: FileBackend, TransactionsFile: "a.json", SettingsFile: "b.json"}, false},
		{"file missing transactions", Config{Type: FileBackend, SettingsFile: "b.json"}, true},
		{"file missing settings", Config{Type: FileBackend, TransactionsFile: "a.json"}, true},
		{"sqlite ok", Config{Type: SQLiteBackend, SQLiteDBPath: "db.sqlite"}, false},
		{"sqlite missing path", Config{Type: SQLiteBackend}, true},
		{"invalid type", Config{Type: Type("bogus")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFactoryCreatesMemoryBackend(t *testing.T) {
	factory := NewFactory(nil)

	result, err := factory.CreateBackend(context.Background(), Config{Type: MemoryBackend})
	if err != nil {
		t.Fatalf("CreateBackend: %v", err)
	}
	if result.Repos == nil {
		t.Fatal("expected repositories")
	}
	if result.Cleanup != nil {
		t.Fatal("memory backend should not need cleanup")
	}
}

func TestFactoryCreatesFileBackend(t *testing.T) {
	dir := t.TempDir()
	factory := NewFactory(nil)

	result, err := factory.CreateBackend(context.Background(), Config{
		Type:             FileBackend,
		TransactionsFile: filepath.Join(dir, "tx.json"),
		SettingsFile:     filepath.Join(dir, "settings.json"),
	})
	if err != nil {
		t.Fatalf("CreateBackend: %v", err)
	}
	if result.Repos == nil {
		t.Fatal("expected repositories")
	}

	txs, err := result.Repos.LoadTransactions(context.Background())
	if err != nil {
		t.Fatalf("LoadTransactions: %v", err)
	}
	if len(txs) != 0 {
		t.Fatalf("fresh backend has %d transactions, want 0", len(txs))
	}
}

func TestFactoryRejectsInvalidConfig(t *testing.T) {
	factory := NewFactory(nil)

	if _, err := factory.CreateBackend(context.Background(), Config{Type: FileBackend}); err == nil {
		t.Fatal("expected error for file backend without paths")
	}
}
