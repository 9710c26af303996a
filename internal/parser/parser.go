// Package parser turns raw per-page statement text into transaction
// records. Pattern templates recover candidate lines, and the date and
// amount normalizers resolve the captured fields into typed values.
package parser

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/finlens/statement-insights/internal/models"
)

// Parser extracts transactions from extracted page text using an
// issuer profile's pattern templates.
type Parser struct {
	log   *log.Logger
	dates *DateNormalizer
}

// New returns a Parser logging skipped candidates to logger.
func New(logger *log.Logger) *Parser {
	return &Parser{
		log:   logger,
		dates: NewDateNormalizer(),
	}
}

// Parse runs every template of the detected profile over each page and
// returns the raw transaction list, in match order. Deduplication,
// zero-amount filtering, and sorting are the set builder's job.
func (p *Parser) Parse(pages []string) []models.Transaction {
	profile := DetectProfile(strings.Join(pages, "\n"))
	return p.ParseWithProfile(pages, profile)
}

// ParseWithProfile is Parse with an explicitly chosen issuer profile.
func (p *Parser) ParseWithProfile(pages []string, profile *Profile) []models.Transaction {
	var transactions []models.Transaction
	for i, page := range pages {
		if strings.TrimSpace(page) == "" {
			continue
		}
		text := page
		if profile.Preprocess != nil {
			text = profile.Preprocess(text)
		}
		text = filterNoiseLines(text)

		for _, template := range profile.Templates {
			for _, candidate := range template.Match(text) {
				txn, ok := p.resolve(candidate)
				if !ok {
					p.log.Debug("skipped candidate",
						"page", i+1, "template", template.Name,
						"date", candidate.DateText, "amount", candidate.AmountText)
					continue
				}
				transactions = append(transactions, txn)
			}
		}
	}
	return transactions
}

// resolve turns a raw candidate into a typed transaction. Candidates
// whose amount resolves to zero carry no money movement and are dropped.
func (p *Parser) resolve(c Candidate) (models.Transaction, bool) {
	var amount float64
	switch {
	case c.Withdrawal != "" || c.Deposit != "":
		// Column layouts: the populated column decides the sign.
		if c.Withdrawal != "" {
			amount = -NormalizeAmount(c.Withdrawal, "")
		} else {
			amount = NormalizeAmount(c.Deposit, "")
		}
	default:
		amount = NormalizeAmount(c.AmountText, c.Marker)
	}
	if amount == 0 {
		return models.Transaction{}, false
	}

	txn := models.Transaction{
		Date:        p.dates.Normalize(c.DateText),
		Description: CleanDescription(c.Description),
		Amount:      amount,
	}
	if c.BalanceText != "" {
		balance := NormalizeAmount(c.BalanceText, "")
		txn.Balance = &balance
	}
	return txn, true
}

// StatementPeriod derives the min and max transaction dates. It returns
// nil for an empty transaction list.
func StatementPeriod(transactions []models.Transaction) *models.StatementPeriod {
	if len(transactions) == 0 {
		return nil
	}
	start, end := transactions[0].Date, transactions[0].Date
	for _, t := range transactions[1:] {
		if t.Date.Before(start) {
			start = t.Date
		}
		if t.Date.After(end) {
			end = t.Date
		}
	}
	return &models.StatementPeriod{
		StartDate: start.Format(models.DateFormat),
		EndDate:   end.Format(models.DateFormat),
	}
}
