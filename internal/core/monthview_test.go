package core

import (
	"testing"
	"time"
)

func TestFilterMonthMembershipAndOrder(t *testing.T) {
	txs := []Transaction{
		tx(NewDate(2024, time.March, 5), 100, CategoryIncome, TypeIncome),
		tx(NewDate(2024, time.April, 1), 200, "Shopping", TypeExpense),
		tx(NewDate(2024, time.March, 20), 300, "Shopping", TypeExpense),
		tx(NewDate(2023, time.March, 10), 400, "Shopping", TypeExpense),
		tx(NewDate(2024, time.March, 10), 500, "Food & Dining", TypeExpense),
	}

	got := FilterMonth(txs, 2024, time.March)
	if len(got) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(got))
	}
	for _, tr := range got {
		if tr.Date.UTC().Year() != 2024 || tr.Date.UTC().Month() != time.March {
			t.Fatalf("transaction outside March 2024: %v", tr.Date)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Date.Before(got[i].Date) {
			t.Fatalf("not sorted descending at %d: %v before %v", i, got[i-1].Date, got[i].Date)
		}
	}
}

func TestFilterMonthStableOnEqualDates(t *testing.T) {
	day := NewDate(2024, time.May, 10)
	first := tx(day, 100, "Shopping", TypeExpense)
	first.ID = "first"
	second := tx(day, 200, "Shopping", TypeExpense)
	second.ID = "second"

	got := FilterMonth([]Transaction{first, second}, 2024, time.May)
	if len(got) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(got))
	}
	if got[0].ID != "first" || got[1].ID != "second" {
		t.Fatalf("equal dates lost insertion order: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestSummarizeCategoriesSortsDescending(t *testing.T) {
	txs := []Transaction{
		tx(NewDate(2024, time.March, 1), 2000, "Shopping", TypeExpense),
		tx(NewDate(2024, time.March, 2), 4000, "Food & Dining", TypeExpense),
		tx(NewDate(2024, time.March, 3), 1000, "Shopping", TypeExpense),
		tx(NewDate(2024, time.March, 4), 9999, CategoryIncome, TypeIncome), // not an expense
	}
	got := SummarizeCategories(txs)
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got))
	}
	if got[0].Name != "Food & Dining" || got[0].Amount.Cents != 4000 {
		t.Fatalf("unexpected first category: %+v", got[0])
	}
	if got[1].Name != "Shopping" || got[1].Amount.Cents != 3000 {
		t.Fatalf("unexpected second category: %+v", got[1])
	}
}

func TestSummarizeCategoriesDeterministicTies(t *testing.T) {
	txs := []Transaction{
		tx(NewDate(2024, time.March, 1), 1000, "Shopping", TypeExpense),
		tx(NewDate(2024, time.March, 2), 1000, "Education", TypeExpense),
	}
	for i := 0; i < 5; i++ {
		got := SummarizeCategories(txs)
		if got[0].Name != "Shopping" || got[1].Name != "Education" {
			t.Fatalf("tie order not deterministic on run %d: %+v", i, got)
		}
	}
}

// The worked march-2024 scenario: income 100, expenses 40 + 20.
func TestBuildMonthViewMarchExample(t *testing.T) {
	txs := []Transaction{
		tx(NewDate(2024, time.March, 5), 10000, CategoryIncome, TypeIncome),
		tx(NewDate(2024, time.March, 10), 4000, "Food & Dining", TypeExpense),
		tx(NewDate(2024, time.March, 15), 2000, "Shopping", TypeExpense),
	}
	view := BuildMonthView(txs, 2024, time.March)

	if view.Income.Cents != 10000 || view.Expense.Cents != 6000 || view.Savings.Cents != 0 {
		t.Fatalf("totals = %d/%d/%d, want 10000/6000/0",
			view.Income.Cents, view.Expense.Cents, view.Savings.Cents)
	}
	if len(view.Transactions) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(view.Transactions))
	}
	// Most recent first.
	if view.Transactions[0].Date.UTC().Day() != 15 {
		t.Fatalf("expected day 15 first, got %d", view.Transactions[0].Date.UTC().Day())
	}
	if len(view.Categories) != 2 ||
		view.Categories[0].Name != "Food & Dining" || view.Categories[0].Amount.Cents != 4000 ||
		view.Categories[1].Name != "Shopping" || view.Categories[1].Amount.Cents != 2000 {
		t.Fatalf("unexpected category summary: %+v", view.Categories)
	}

	slices := RenderDistribution(view.Categories, view.Expense)
	if len(slices) != 2 {
		t.Fatalf("expected 2 slices, got %d", len(slices))
	}
	if diff := slices[0].Percentage - 100.0*4000/6000; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("first percentage = %f, want ~66.7", slices[0].Percentage)
	}
	if diff := slices[1].Percentage - 100.0*2000/6000; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("second percentage = %f, want ~33.3", slices[1].Percentage)
	}
}
