package core

import (
	"sort"
	"time"
)

// MonthView is the derived drill-down for one calendar month: the filtered
// transaction list (most recent first), the three per-type totals, and the
// expense breakdown by category (largest first).
type MonthView struct {
	Year         int              `json:"year"`
	Month        time.Month       `json:"month"`
	Transactions []Transaction    `json:"transactions"`
	Income       Money            `json:"income"`
	Expense      Money            `json:"expense"`
	Savings      Money            `json:"savings"`
	Categories   []CategoryAmount `json:"categories"`
}

// FilterMonth returns the transactions whose UTC calendar year and month
// match, sorted by date descending. The sort is stable so transactions with
// identical timestamps keep their insertion order.
func FilterMonth(txs []Transaction, year int, month time.Month) []Transaction {
	var out []Transaction
	for _, tx := range txs {
		d := tx.Date.UTC()
		if d.Year() == year && d.Month() == month {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// SummarizeCategories groups expense transactions by category and sums their
// amounts, sorted by amount descending. Categories are first collected in
// first-seen order, so equal amounts tie-break deterministically on input
// order.
func SummarizeCategories(txs []Transaction) []CategoryAmount {
	sums := make(map[string]int64)
	var order []string
	for _, tx := range txs {
		if tx.Type != TypeExpense {
			continue
		}
		if _, seen := sums[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		sums[tx.Category] += tx.Amount.Cents
	}
	out := make([]CategoryAmount, 0, len(order))
	for _, name := range order {
		out = append(out, CategoryAmount{Name: name, Amount: Money{Cents: sums[name]}})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents > out[j].Amount.Cents
	})
	return out
}

// BuildMonthView computes the full month drill-down for year+month.
func BuildMonthView(txs []Transaction, year int, month time.Month) MonthView {
	filtered := FilterMonth(txs, year, month)
	view := MonthView{
		Year:         year,
		Month:        month,
		Transactions: filtered,
	}
	for _, tx := range filtered {
		switch tx.Type {
		case TypeIncome:
			view.Income = view.Income.Add(tx.Amount)
		case TypeExpense:
			view.Expense = view.Expense.Add(tx.Amount)
		case TypeSavings:
			view.Savings = view.Savings.Add(tx.Amount)
		}
	}
	view.Categories = SummarizeCategories(filtered)
	return view
}
