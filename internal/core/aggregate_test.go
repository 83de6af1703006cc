package core

import (
	"testing"
	"time"
)

func tx(date time.Time, cents int64, category string, typ TransactionType) Transaction {
	return Transaction{
		ID:          "t-" + date.Format("20060102") + "-" + string(typ),
		Date:        date,
		Description: "test",
		Amount:      Money{Cents: cents},
		Category:    category,
		Type:        typ,
	}
}

func TestAggregateByMonthCoversAllMonths(t *testing.T) {
	stats := AggregateByMonth(nil, 2024)
	if len(stats) != 12 {
		t.Fatalf("expected 12 months, got %d", len(stats))
	}
	for i, s := range stats {
		if s.Income.Cents != 0 || s.Expense.Cents != 0 || s.Savings.Cents != 0 {
			t.Fatalf("month %d not zero-initialized: %+v", i, s)
		}
	}
}

func TestAggregateByMonthSumsPerType(t *testing.T) {
	txs := []Transaction{
		tx(NewDate(2024, time.March, 5), 10000, CategoryIncome, TypeIncome),
		tx(NewDate(2024, time.March, 10), 4000, "Food & Dining", TypeExpense),
		tx(NewDate(2024, time.March, 15), 2000, "Shopping", TypeExpense),
		tx(NewDate(2024, time.March, 20), 1500, CategorySavings, TypeSavings),
		tx(NewDate(2024, time.July, 1), 500, "Shopping", TypeExpense),
	}
	stats := AggregateByMonth(txs, 2024)

	march := stats[2]
	if march.Income.Cents != 10000 {
		t.Fatalf("march income = %d, want 10000", march.Income.Cents)
	}
	if march.Expense.Cents != 6000 {
		t.Fatalf("march expense = %d, want 6000", march.Expense.Cents)
	}
	if march.Savings.Cents != 1500 {
		t.Fatalf("march savings = %d, want 1500", march.Savings.Cents)
	}
	if stats[6].Expense.Cents != 500 {
		t.Fatalf("july expense = %d, want 500", stats[6].Expense.Cents)
	}
}

func TestAggregateByMonthIgnoresOtherYears(t *testing.T) {
	txs := []Transaction{
		tx(NewDate(2023, time.December, 31), 9999, "Shopping", TypeExpense),
		tx(NewDate(2025, time.January, 1), 9999, CategoryIncome, TypeIncome),
	}
	stats := AggregateByMonth(txs, 2024)
	for i, s := range stats {
		if s.Income.Cents != 0 || s.Expense.Cents != 0 || s.Savings.Cents != 0 {
			t.Fatalf("month %d leaked cross-year amounts: %+v", i, s)
		}
	}
}

func TestAggregateByMonthOrderIndependent(t *testing.T) {
	txs := []Transaction{
		tx(NewDate(2024, time.January, 1), 100, "Shopping", TypeExpense),
		tx(NewDate(2024, time.June, 15), 250, CategoryIncome, TypeIncome),
		tx(NewDate(2024, time.June, 20), 75, "Food & Dining", TypeExpense),
		tx(NewDate(2024, time.December, 31), 30, CategorySavings, TypeSavings),
	}
	want := AggregateByMonth(txs, 2024)

	reversed := make([]Transaction, len(txs))
	for i, tr := range txs {
		reversed[len(txs)-1-i] = tr
	}
	got := AggregateByMonth(reversed, 2024)
	if got != want {
		t.Fatalf("aggregation changed under permutation:\n got %+v\nwant %+v", got, want)
	}
}

func TestAggregateByMonthSkipsUnknownTypes(t *testing.T) {
	txs := []Transaction{
		tx(NewDate(2024, time.April, 1), 1234, "Shopping", TransactionType("refund")),
	}
	stats := AggregateByMonth(txs, 2024)
	april := stats[3]
	if april.Income.Cents != 0 || april.Expense.Cents != 0 || april.Savings.Cents != 0 {
		t.Fatalf("unknown type was summed: %+v", april)
	}
}
