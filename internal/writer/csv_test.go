package writer

import (
	"strings"
	"testing"
	"time"

	"github.com/finlens/statement-insights/internal/models"
)

func TestWriteCSV(t *testing.T) {
	balance := 10250.0
	transactions := []models.Transaction{
		{
			Date:        time.Date(2024, 11, 6, 0, 0, 0, 0, time.UTC),
			Description: "UPI-SWIGGY ORDER",
			Amount:      -450,
			Category:    "transfer",
			Balance:     &balance,
		},
		{
			Date:        time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC),
			Description: "SALARY CREDIT",
			Amount:      55000,
			Category:    "income",
		},
	}

	var buf strings.Builder
	if err := WriteCSV(&buf, transactions); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[0] != "Date,Description,Category,Type,Amount,Balance" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "2024-11-06,UPI-SWIGGY ORDER,transfer,debit,-450.00,10250.00" {
		t.Errorf("row 1 = %q", lines[1])
	}
	if lines[2] != "2024-11-30,SALARY CREDIT,income,credit,55000.00," {
		t.Errorf("row 2 = %q", lines[2])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf strings.Builder
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "Date,Description,Category,Type,Amount,Balance" {
		t.Errorf("output = %q", buf.String())
	}
}
