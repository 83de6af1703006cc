package classify

import (
	"context"
	"strings"

	"zenledger/internal/core"
)

// RuleClassifier is the offline gateway backend: case-insensitive keyword
// matching over the description. It is the default in development and the
// swap-in strategy when no LLM endpoint is configured.
type RuleClassifier struct{}

func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{}
}

var incomeKeywords = []string{
	"salary", "payroll", "wage", "paycheck", "bonus", "interest", "dividend",
	"gift received", "income", "工资", "奖金",
}

var savingsKeywords = []string{
	"savings", "saving transfer", "investment", "stock buy", "stocks", "fund",
	"deposit", "储蓄", "存款", "基金",
}

var expenseRules = []struct {
	category string
	keywords []string
}{
	{"Food & Dining", []string{"starbucks", "coffee", "lunch", "dinner", "breakfast", "restaurant", "mcdonald", "grocery", "supermarket", "咖啡", "午餐", "晚餐"}},
	{"Transportation", []string{"uber", "taxi", "gas", "fuel", "bus", "metro", "subway", "train ticket", "parking", "打车", "地铁"}},
	{"Housing & Utilities", []string{"rent", "mortgage", "electricity", "water bill", "internet bill", "utilities", "房租", "水电"}},
	{"Shopping", []string{"amazon", "uniqlo", "ikea", "taobao", "mall", "clothes", "shoes", "购物"}},
	{"Health & Fitness", []string{"doctor", "pharmacy", "hospital", "gym", "fitness", "dentist", "医院", "健身"}},
	{"Education", []string{"tuition", "course", "textbook", "school", "udemy", "学费", "课程"}},
	{"Entertainment", []string{"netflix", "cinema", "movie", "game", "spotify", "concert", "电影", "游戏"}},
	{"Travel & Tourism", []string{"hotel", "airfare", "flight", "airbnb", "vacation", "机票", "酒店"}},
	{"Insurance & Finance", []string{"insurance", "bank fee", "premium", "loan payment", "保险"}},
	{"Gifts & Donations", []string{"gift for", "donation", "charity", "red packet", "红包", "捐"}},
	{"Personal Care", []string{"haircut", "salon", "spa", "cosmetics", "理发", "化妆"}},
}

// Classify never fails; unmatched descriptions land in General expenses,
// which is also the gateway-wide fallback.
func (c *RuleClassifier) Classify(_ context.Context, description string, _ core.Money) (Result, error) {
	text := strings.ToLower(description)

	if matchAny(text, incomeKeywords) {
		return Result{Category: core.CategoryIncome, Type: core.TypeIncome}, nil
	}
	if matchAny(text, savingsKeywords) {
		return Result{Category: core.CategorySavings, Type: core.TypeSavings}, nil
	}
	for _, rule := range expenseRules {
		if matchAny(text, rule.keywords) {
			return Result{Category: rule.category, Type: core.TypeExpense}, nil
		}
	}
	return Result{Category: core.CategoryGeneral, Type: core.TypeExpense}, nil
}

func matchAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
