// Package report assembles the final parse result from categorized
// transactions: deduplication, ordering, summary aggregates, and the
// chart-ready category series.
package report

import (
	"sort"

	"github.com/finlens/statement-insights/internal/models"
)

// chartPalette is assigned to categories in series order and reused
// cyclically past its end.
var chartPalette = []string{
	"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0", "#9966FF",
	"#FF9F40", "#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0",
}

// Build produces the parse result for a raw categorized transaction
// list. Zero-amount records are dropped, duplicates on the (date,
// amount, description) triple collapse to their first occurrence, and
// the survivors sort ascending by date with original order preserved
// within a day. An empty input yields an explicitly empty result, not
// an error; "no transactions" is a renderable state.
func Build(transactions []models.Transaction) models.ParseResult {
	kept := dedupe(transactions)

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Date.Before(kept[j].Date)
	})

	breakdown, labels := categoryBreakdown(kept)

	return models.ParseResult{
		Transactions:      kept,
		Summary:           summarize(kept),
		CategoryBreakdown: breakdown,
		ChartData:         chartData(breakdown, labels),
	}
}

func dedupe(transactions []models.Transaction) []models.Transaction {
	seen := make(map[string]bool, len(transactions))
	kept := make([]models.Transaction, 0, len(transactions))
	for _, txn := range transactions {
		if txn.Amount == 0 {
			continue
		}
		key := txn.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, txn)
	}
	return kept
}

func summarize(transactions []models.Transaction) models.Summary {
	var s models.Summary
	for _, txn := range transactions {
		if txn.Amount > 0 {
			s.TotalReceived += txn.Amount
			s.CreditCount++
		} else {
			s.TotalSpent += -txn.Amount
			s.DebitCount++
		}
	}
	s.Balance = s.TotalReceived - s.TotalSpent
	s.TotalTransactions = len(transactions)
	return s
}

// categoryBreakdown aggregates debits per category. labels carries the
// categories ordered by spend descending, ties alphabetical, so the
// chart series is deterministic; map iteration order is not.
func categoryBreakdown(transactions []models.Transaction) (map[string]models.CategoryStat, []string) {
	breakdown := make(map[string]models.CategoryStat)
	var labels []string
	var totalSpent float64

	for _, txn := range transactions {
		if txn.Amount >= 0 {
			continue
		}
		stat, ok := breakdown[txn.Category]
		if !ok {
			labels = append(labels, txn.Category)
		}
		stat.Amount += -txn.Amount
		stat.Count++
		breakdown[txn.Category] = stat
		totalSpent += -txn.Amount
	}

	if totalSpent > 0 {
		for category, stat := range breakdown {
			stat.Percentage = stat.Amount / totalSpent * 100
			breakdown[category] = stat
		}
	}

	sort.Slice(labels, func(i, j int) bool {
		a, b := breakdown[labels[i]], breakdown[labels[j]]
		if a.Amount != b.Amount {
			return a.Amount > b.Amount
		}
		return labels[i] < labels[j]
	})
	return breakdown, labels
}

func chartData(breakdown map[string]models.CategoryStat, labels []string) models.ChartData {
	chart := models.ChartData{
		Labels: make([]string, 0, len(labels)),
		Values: make([]float64, 0, len(labels)),
		Colors: make([]string, 0, len(labels)),
	}
	for i, label := range labels {
		chart.Labels = append(chart.Labels, label)
		chart.Values = append(chart.Values, breakdown[label].Amount)
		chart.Colors = append(chart.Colors, chartPalette[i%len(chartPalette)])
	}
	return chart
}
