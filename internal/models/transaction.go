package models

import (
	"encoding/json"
	"strconv"
	"time"
)

// DateFormat is the wire format for transaction dates.
const DateFormat = "2006-01-02"

// Transaction represents a single statement transaction.
// Amount is signed: negative means money left the account (debit),
// positive means money came in (credit). The type is always derived
// from the sign and never stored independently.
type Transaction struct {
	Date        time.Time
	Description string
	Amount      float64
	Category    string
	Balance     *float64
}

// Type returns "credit" if the amount is non-negative, "debit" otherwise.
func (t Transaction) Type() string {
	if t.Amount >= 0 {
		return "credit"
	}
	return "debit"
}

// Key identifies a transaction for deduplication: two transactions with
// the same date, amount, and description are the same transaction.
func (t Transaction) Key() string {
	return t.Date.Format(DateFormat) + "\x00" +
		strconv.FormatFloat(t.Amount, 'f', -1, 64) + "\x00" +
		t.Description
}

// MarshalJSON emits the date as an ISO calendar date and includes the
// derived type field.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type out struct {
		Date        string   `json:"date"`
		Description string   `json:"description"`
		Amount      float64  `json:"amount"`
		Category    string   `json:"category"`
		Type        string   `json:"type"`
		Balance     *float64 `json:"balance,omitempty"`
	}
	return json.Marshal(out{
		Date:        t.Date.Format(DateFormat),
		Description: t.Description,
		Amount:      t.Amount,
		Category:    t.Category,
		Type:        t.Type(),
		Balance:     t.Balance,
	})
}

// Summary aggregates a parsed statement by amount sign.
type Summary struct {
	TotalReceived     float64 `json:"totalReceived"`
	TotalSpent        float64 `json:"totalSpent"` // positive magnitude
	Balance           float64 `json:"balance"`
	CreditCount       int     `json:"creditCount"`
	DebitCount        int     `json:"debitCount"`
	TotalTransactions int     `json:"totalTransactions"`
}

// CategoryStat is the per-category slice of the spend breakdown.
type CategoryStat struct {
	Amount     float64 `json:"amount"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ChartData is the chart-ready series derived from the category breakdown.
type ChartData struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors"`
}

// AccountInfo holds issuer-dependent, best-effort account metadata.
type AccountInfo struct {
	AccountName   string `json:"accountName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	AccountType   string `json:"accountType,omitempty"`
	Branch        string `json:"branch,omitempty"`
}

// Empty reports whether no account metadata was found.
func (a AccountInfo) Empty() bool {
	return a == AccountInfo{}
}

// StatementPeriod is the date range spanned by the parsed transactions.
type StatementPeriod struct {
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// ParseResult is the aggregate output of a single parse invocation.
// It is built fresh per request and never persisted.
type ParseResult struct {
	Transactions      []Transaction           `json:"transactions"`
	Summary           Summary                 `json:"summary"`
	CategoryBreakdown map[string]CategoryStat `json:"categoryBreakdown"`
	ChartData         ChartData               `json:"chartData"`
	AccountInfo       *AccountInfo            `json:"accountInfo,omitempty"`
	StatementPeriod   *StatementPeriod        `json:"statementPeriod,omitempty"`
	PageCount         int                     `json:"pageCount"`
}

// ErrorResponse is the error shape returned across the API boundary.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
