package core

// AggregateByMonth sums income, expense and savings amounts per calendar
// month for the given year. The result always covers all 12 months, index 0
// being January; months without transactions stay at zero. Transactions from
// other years are ignored entirely, and unknown transaction types are not
// summed into any bucket. Calendar fields are extracted in UTC.
//
// Pure summation: the result is invariant under any permutation of the input.
func AggregateByMonth(txs []Transaction, year int) [12]MonthlyStats {
	var out [12]MonthlyStats
	for _, tx := range txs {
		d := tx.Date.UTC()
		if d.Year() != year {
			continue
		}
		m := int(d.Month()) - 1
		switch tx.Type {
		case TypeIncome:
			out[m].Income = out[m].Income.Add(tx.Amount)
		case TypeExpense:
			out[m].Expense = out[m].Expense.Add(tx.Amount)
		case TypeSavings:
			out[m].Savings = out[m].Savings.Add(tx.Amount)
		}
	}
	return out
}
