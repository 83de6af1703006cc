// Package classify maps a transaction's free-text description and amount to
// a (category, type) pair. The gateway is a pluggable strategy: an HTTP LLM
// backend for real deployments and an offline keyword backend for
// development and tests.
package classify

import (
	"context"

	"zenledger/internal/core"
)

// Result is the gateway's answer for one proposed transaction.
type Result struct {
	Category string               `json:"category"`
	Type     core.TransactionType `json:"type"`
}

// Classifier assigns a category and type from free text. Implementations may
// suspend on a network round-trip; callers must treat every error as
// non-fatal and substitute Fallback().
type Classifier interface {
	Classify(ctx context.Context, description string, amount core.Money) (Result, error)
}

// Fallback is the deterministic substitute when classification fails. A
// failed classification only degrades categorization quality; it never
// blocks recording.
func Fallback() Result {
	return Result{Category: core.CategoryGeneral, Type: core.TypeExpense}
}

// Normalize enforces the category rules on a gateway result: the type must
// be known and expense categories must come from the closed taxonomy,
// otherwise the result degrades toward the fallback.
func Normalize(r Result) Result {
	if !r.Type.Valid() {
		return Fallback()
	}
	r.Category = core.NormalizeCategory(r.Type, r.Category)
	return r
}
