// Package categorizer assigns each transaction one label from a fixed
// taxonomy using an ordered rule cascade: method overrides, keyword
// tables, amount heuristics, then a recurring-amount post-pass. The
// rules are data, not logic; the cascade itself never changes per issuer.
package categorizer

import (
	"math"
	"strings"

	"github.com/finlens/statement-insights/internal/models"
)

// CategoryMiscellaneous is the catch-all bucket.
const CategoryMiscellaneous = "miscellaneous"

// Rule pairs a category with the substrings that select it. Within a
// rule, any keyword hit selects the category; across rules, declaration
// order decides ties, so the ordering of a rule list is load-bearing.
type Rule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// Categorizer is immutable after construction and safe for concurrent use.
type Categorizer struct {
	rules Ruleset
}

// New returns a Categorizer over the given rules.
func New(rules Ruleset) *Categorizer {
	return &Categorizer{rules: rules}
}

// Categorize maps a description and signed amount to a category.
// Priority: overrides, keyword tables in order, large-amount fallback,
// then miscellaneous.
func (c *Categorizer) Categorize(description string, amount float64) string {
	description = strings.ToLower(description)

	for _, rule := range c.rules.Overrides {
		if matchAny(description, rule.Keywords) {
			return rule.Category
		}
	}

	for _, rule := range c.rules.Categories {
		if matchAny(description, rule.Keywords) {
			return rule.Category
		}
	}

	if math.Abs(amount) > c.rules.LargeAmountThreshold {
		if amount > 0 {
			return "income"
		}
		return "finance"
	}

	return CategoryMiscellaneous
}

// Apply categorizes every transaction in place, then runs the
// post-pass rules that need the amount and date context.
func (c *Categorizer) Apply(transactions []models.Transaction) {
	for i := range transactions {
		transactions[i].Category = c.Categorize(transactions[i].Description, transactions[i].Amount)
	}
	for i := range transactions {
		transactions[i].Category = c.postProcess(transactions[i])
	}
}

// postProcess reclassifies subscription-priced debits with renewal
// language to entertainment, and large credits landing near month
// boundaries to income.
func (c *Categorizer) postProcess(txn models.Transaction) string {
	description := strings.ToLower(txn.Description)

	if txn.Category != "entertainment" && c.nearSubscriptionAmount(txn.Amount) {
		if matchAny(description, c.rules.SubscriptionKeywords) {
			return "entertainment"
		}
	}

	// Salaries cluster at month end and month start.
	if txn.Amount > c.rules.LargeAmountThreshold {
		day := txn.Date.Day()
		if day >= c.rules.PaydayMonthEndDay || day <= c.rules.PaydayMonthStartDay {
			return "income"
		}
	}

	return txn.Category
}

func (c *Categorizer) nearSubscriptionAmount(amount float64) bool {
	for _, price := range c.rules.SubscriptionAmounts {
		if math.Abs(math.Abs(amount)-price) < c.rules.SubscriptionTolerance {
			return true
		}
	}
	return false
}

func matchAny(description string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(description, keyword) {
			return true
		}
	}
	return false
}
