package core

// Category sentinels. Income and savings transactions always carry their
// sentinel category; General absorbs anything the classifier returns outside
// the closed expense taxonomy.
const (
	CategoryIncome  = "Income"
	CategorySavings = "Savings"
	CategoryGeneral = "General"
)

// ExpenseCategories is the closed taxonomy for expense transactions. The
// classifier is instructed to pick from this list; NormalizeCategory coerces
// anything else to General.
var ExpenseCategories = []string{
	"Food & Dining",
	"Transportation",
	"Housing & Utilities",
	"Shopping",
	"Health & Fitness",
	"Education",
	"Entertainment",
	"Travel & Tourism",
	"Insurance & Finance",
	"Gifts & Donations",
	"Personal Care",
	CategoryGeneral,
}

// IsExpenseCategory reports whether name belongs to the closed taxonomy.
func IsExpenseCategory(name string) bool {
	for _, c := range ExpenseCategories {
		if c == name {
			return true
		}
	}
	return false
}

// NormalizeCategory enforces the category rules for a given type: income and
// savings get their sentinels, expenses must be in the taxonomy or fall back
// to General. Data-quality normalization, never an error.
func NormalizeCategory(t TransactionType, category string) string {
	switch t {
	case TypeIncome:
		return CategoryIncome
	case TypeSavings:
		return CategorySavings
	default:
		if IsExpenseCategory(category) {
			return category
		}
		return CategoryGeneral
	}
}
