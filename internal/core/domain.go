package core

import (
	"errors"
	"strings"
	"time"
)

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
	TypeSavings TransactionType = "savings"
)

type (
	// TransactionType tells whether money came in, went out, or was set aside.
	TransactionType string

	Money struct {
		Cents int64 `json:"cents"`
	}

	// Transaction is a single recorded financial event. It is immutable once
	// stored: created via the classification flow, deleted by id, never
	// updated in place. The amount carries no sign; Type implies it.
	Transaction struct {
		ID          string          `json:"id"`
		Date        time.Time       `json:"date"`
		Description string          `json:"description"`
		Amount      Money           `json:"amount"`
		Category    string          `json:"category"`
		Type        TransactionType `json:"type"`
	}

	// MonthlyStats holds the income/expense/savings sums for one calendar
	// month. Derived, never persisted.
	MonthlyStats struct {
		Income  Money `json:"income"`
		Expense Money `json:"expense"`
		Savings Money `json:"savings"`
	}

	// CategoryAmount is one category's summed expense amount within a month.
	CategoryAmount struct {
		Name   string `json:"name"`
		Amount Money  `json:"amount"`
	}

	// AppSettings is presentation configuration, persisted separately from
	// the ledger itself.
	AppSettings struct {
		Language string `json:"language"`
		Theme    string `json:"theme"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrZeroDate         = errors.New("date cannot be zero")
)

func (t TransactionType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeSavings:
		return true
	default:
		return false
	}
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (tx Transaction) Validate() error {
	if tx.Date.IsZero() {
		return ErrZeroDate
	}
	if len(strings.TrimSpace(tx.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(tx.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := tx.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(tx.Category) == "" {
		return ErrEmptyCategory
	}
	if !tx.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

// NewDate builds a calendar date at midnight UTC. All year/month grouping in
// this package extracts calendar fields in UTC, so dates must be stored that
// way too.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

const (
	DefaultLanguage = "zh"
	DefaultTheme    = "light"
)

// DefaultSettings returns the settings used when nothing is persisted yet.
func DefaultSettings() AppSettings {
	return AppSettings{Language: DefaultLanguage, Theme: DefaultTheme}
}

func (s AppSettings) Validate() error {
	switch s.Language {
	case "en", "zh":
	default:
		return errors.New("invalid language")
	}
	switch s.Theme {
	case "light", "dark", "gray":
	default:
		return errors.New("invalid theme")
	}
	return nil
}
