// Package pipeline wires extraction, parsing, categorization, and
// report building into the single entry point the CLI and API share.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/finlens/statement-insights/internal/categorizer"
	"github.com/finlens/statement-insights/internal/extractor"
	"github.com/finlens/statement-insights/internal/models"
	"github.com/finlens/statement-insights/internal/parser"
	"github.com/finlens/statement-insights/internal/report"
)

// Pipeline analyzes one statement per call. It holds only immutable
// configuration, so a single instance is safe for concurrent use; each
// call works on its own in-memory state.
type Pipeline struct {
	log         *log.Logger
	extractor   *extractor.Extractor
	parser      *parser.Parser
	categorizer *categorizer.Categorizer
}

// New builds a Pipeline with the given categorization rules.
func New(logger *log.Logger, rules categorizer.Ruleset) *Pipeline {
	return &Pipeline{
		log:         logger,
		extractor:   extractor.New(logger),
		parser:      parser.New(logger),
		categorizer: categorizer.New(rules),
	}
}

// AnalyzeFile parses the statement at path.
func (p *Pipeline) AnalyzeFile(path string) (models.ParseResult, error) {
	if err := CheckExtension(path); err != nil {
		return models.ParseResult{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return models.ParseResult{}, fmt.Errorf("%w: %v", models.ErrDocumentUnreadable, err)
	}
	return p.analyze(data)
}

// AnalyzeBytes parses an in-memory statement. filename is used only for
// the extension check.
func (p *Pipeline) AnalyzeBytes(data []byte, filename string) (models.ParseResult, error) {
	if err := CheckExtension(filename); err != nil {
		return models.ParseResult{}, err
	}
	return p.analyze(data)
}

func (p *Pipeline) analyze(data []byte) (models.ParseResult, error) {
	pages, err := p.extractor.PagesFromBytes(data)
	if err != nil {
		return models.ParseResult{}, err
	}

	fullText := strings.Join(pages, "\n")
	transactions := p.parser.Parse(pages)
	p.categorizer.Apply(transactions)

	result := report.Build(transactions)
	result.PageCount = len(pages)
	result.StatementPeriod = parser.StatementPeriod(result.Transactions)
	if info := parser.ExtractAccountInfo(fullText); !info.Empty() {
		result.AccountInfo = &info
	}

	p.log.Info("statement analyzed",
		"pages", result.PageCount,
		"transactions", result.Summary.TotalTransactions)
	return result, nil
}

// CheckExtension rejects filenames that are not PDF statements. Callers
// that short-circuit on cached results must run this check themselves,
// since the cache is keyed on content rather than filename.
func CheckExtension(name string) error {
	if strings.ToLower(filepath.Ext(name)) != ".pdf" {
		return fmt.Errorf("%w: %s", models.ErrUnsupportedFormat, filepath.Base(name))
	}
	return nil
}
