package pipeline

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/finlens/statement-insights/internal/categorizer"
	"github.com/finlens/statement-insights/internal/models"
)

func testPipeline() *Pipeline {
	return New(log.New(io.Discard), categorizer.DefaultRuleset())
}

func TestAnalyzeBytesRejectsNonPDF(t *testing.T) {
	p := testPipeline()
	_, err := p.AnalyzeBytes([]byte("data"), "statement.csv")
	if !errors.Is(err, models.ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestAnalyzeBytesRejectsGarbagePDF(t *testing.T) {
	p := testPipeline()
	_, err := p.AnalyzeBytes([]byte("not a pdf"), "statement.pdf")
	if !errors.Is(err, models.ErrDocumentUnreadable) {
		t.Fatalf("err = %v, want ErrDocumentUnreadable", err)
	}
}

func TestAnalyzeFileMissing(t *testing.T) {
	p := testPipeline()
	_, err := p.AnalyzeFile("/nonexistent/statement.pdf")
	if !errors.Is(err, models.ErrDocumentUnreadable) {
		t.Fatalf("err = %v, want ErrDocumentUnreadable", err)
	}
}

func TestAnalyzeFileWrongExtension(t *testing.T) {
	p := testPipeline()
	_, err := p.AnalyzeFile("/tmp/statement.docx")
	if !errors.Is(err, models.ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}
