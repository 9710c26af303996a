// Command statement-insights analyzes a bank or payment-platform PDF
// statement and writes the extracted transactions as CSV or JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/finlens/statement-insights/internal/categorizer"
	"github.com/finlens/statement-insights/internal/logging"
	"github.com/finlens/statement-insights/internal/pipeline"
	"github.com/finlens/statement-insights/internal/writer"
)

func main() {
	var (
		inputPath  = flag.String("input", "", "path to the statement PDF")
		outputPath = flag.String("output", "", "output file (default: stdout)")
		format     = flag.String("format", "csv", "output format: csv or json")
		rulesPath  = flag.String("rules", "", "optional YAML file with categorization rules")
	)
	flag.Parse()

	logger := logging.New("cli")

	if *inputPath == "" {
		if flag.NArg() == 1 {
			*inputPath = flag.Arg(0)
		} else {
			fmt.Fprintln(os.Stderr, "usage: statement-insights -input statement.pdf [-output out.csv] [-format csv|json]")
			os.Exit(2)
		}
	}

	rules := categorizer.DefaultRuleset()
	if *rulesPath != "" {
		loaded, err := categorizer.LoadRuleset(*rulesPath)
		if err != nil {
			logger.Fatal("failed to load rules", "path", *rulesPath, "err", err)
		}
		rules = loaded
	}

	result, err := pipeline.New(logger, rules).AnalyzeFile(*inputPath)
	if err != nil {
		logger.Fatal("analysis failed", "file", *inputPath, "err", err)
	}

	out := os.Stdout
	if *outputPath != "" {
		f, err := os.Create(*outputPath)
		if err != nil {
			logger.Fatal("failed to create output file", "path", *outputPath, "err", err)
		}
		defer f.Close()
		out = f
	}

	switch *format {
	case "csv":
		err = writer.WriteCSV(out, result.Transactions)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		err = enc.Encode(result)
	default:
		logger.Fatal("unknown format", "format", *format)
	}
	if err != nil {
		logger.Fatal("failed to write output", "err", err)
	}

	logger.Info("done",
		"transactions", result.Summary.TotalTransactions,
		"received", result.Summary.TotalReceived,
		"spent", result.Summary.TotalSpent)
}
