package categorizer

// Ruleset holds every tunable of the cascade. DefaultRuleset covers
// Indian bank and UPI statements; LoadRuleset swaps in an external
// rule file without touching the matching algorithm.
type Ruleset struct {
	// Overrides run before the keyword tables. Transaction-method
	// prefixes are stronger signals than merchant keywords: a
	// "UPI-SWIGGY" line is a transfer first, whatever the merchant.
	Overrides []Rule `yaml:"overrides"`

	// Categories are scanned in declaration order, first match wins.
	Categories []Rule `yaml:"categories"`

	// LargeAmountThreshold gates the amount-based fallback and the
	// payday post-pass.
	LargeAmountThreshold float64 `yaml:"largeAmountThreshold"`

	// SubscriptionAmounts are common subscription price points; a debit
	// within SubscriptionTolerance of one, with renewal language in the
	// description, reclassifies to entertainment.
	SubscriptionAmounts   []float64 `yaml:"subscriptionAmounts"`
	SubscriptionTolerance float64   `yaml:"subscriptionTolerance"`
	SubscriptionKeywords  []string  `yaml:"subscriptionKeywords"`

	// Payday window: large credits on day >= end-day or <= start-day
	// reclassify to income.
	PaydayMonthEndDay   int `yaml:"paydayMonthEndDay"`
	PaydayMonthStartDay int `yaml:"paydayMonthStartDay"`
}

// DefaultRuleset returns the built-in rules.
func DefaultRuleset() Ruleset {
	return Ruleset{
		Overrides: []Rule{
			{Category: "income", Keywords: []string{"salary", "sal cr", "sal/"}},
			{Category: "transfer", Keywords: []string{"upi-", "upi/", "upi ", "imps-", "imps/", "neft-", "neft/"}},
			{Category: "transfer", Keywords: []string{"atm", "cash withdrawal"}},
			{Category: "shopping", Keywords: []string{"pos ", "pos/", "pos-"}},
			{Category: "finance", Keywords: []string{"emi", "loan"}},
		},
		Categories: []Rule{
			{Category: "food", Keywords: []string{"restaurant", "food", "swiggy", "zomato", "dining", "cafe", "hotel"}},
			{Category: "shopping", Keywords: []string{"amazon", "flipkart", "myntra", "retail", "store", "shop", "mall"}},
			{Category: "travel", Keywords: []string{"uber", "ola", "metro", "petrol", "fuel", "travel", "irctc", "railway"}},
			{Category: "bills", Keywords: []string{"electricity", "water", "gas", "mobile", "phone", "internet", "dth", "recharge"}},
			{Category: "entertainment", Keywords: []string{"movie", "netflix", "prime", "hotstar", "spotify", "subscription"}},
			{Category: "finance", Keywords: []string{"emi", "loan", "interest", "insurance", "premium", "investment"}},
			{Category: "health", Keywords: []string{"hospital", "doctor", "medical", "pharmacy", "medicine"}},
			{Category: "education", Keywords: []string{"school", "college", "tuition", "course", "fee"}},
			{Category: "income", Keywords: []string{"salary", "interest earned", "dividend", "refund", "cashback"}},
			{Category: "transfer", Keywords: []string{"transfer", "sent", "received", "payment", "deposit", "withdraw"}},
		},
		LargeAmountThreshold:  10000,
		SubscriptionAmounts:   []float64{199, 299, 399, 499, 999},
		SubscriptionTolerance: 5,
		SubscriptionKeywords:  []string{"subscription", "monthly", "renewal"},
		PaydayMonthEndDay:     25,
		PaydayMonthStartDay:   7,
	}
}

// Taxonomy returns the category labels of the ruleset in declaration
// order, with the catch-all bucket last.
func (r Ruleset) Taxonomy() []string {
	seen := make(map[string]bool)
	var labels []string
	add := func(category string) {
		if !seen[category] {
			seen[category] = true
			labels = append(labels, category)
		}
	}
	for _, rule := range r.Overrides {
		add(rule.Category)
	}
	for _, rule := range r.Categories {
		add(rule.Category)
	}
	add(CategoryMiscellaneous)
	return labels
}
