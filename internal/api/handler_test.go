package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"

	"github.com/finlens/statement-insights/internal/categorizer"
	"github.com/finlens/statement-insights/internal/models"
	"github.com/finlens/statement-insights/internal/pipeline"
)

func testApp() *fiber.App {
	logger := log.New(io.Discard)
	h := NewHandler(logger, pipeline.New(logger, categorizer.DefaultRuleset()), 4)
	app := fiber.New()
	h.Register(app)
	return app
}

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHandleHealth(t *testing.T) {
	app := testApp()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestHandleAnalyzeMissingFile(t *testing.T) {
	app := testApp()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleAnalyzeUnsupportedFormat(t *testing.T) {
	app := testApp()
	resp, err := app.Test(uploadRequest(t, "statement.csv", []byte("a,b,c")))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var body models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Error == "" {
		t.Error("error response missing error field")
	}
}

func TestHandleAnalyzeUnreadableDocument(t *testing.T) {
	app := testApp()
	resp, err := app.Test(uploadRequest(t, "statement.pdf", []byte("definitely not a pdf")))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
}

func TestHandleAnalyzeUnsupportedFormatSkipsCache(t *testing.T) {
	logger := log.New(io.Discard)
	h := NewHandler(logger, pipeline.New(logger, categorizer.DefaultRuleset()), 4)
	app := fiber.New()
	h.Register(app)

	// Seed the cache with a result for these exact bytes. Re-uploading
	// them under a non-PDF name must still fail the extension gate.
	content := []byte("previously analyzed statement bytes")
	h.cache.put(cacheKey(content), models.ParseResult{PageCount: 1})

	resp, err := app.Test(uploadRequest(t, "statement.csv", content))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestResultCache(t *testing.T) {
	c := newResultCache(2)
	a := models.ParseResult{PageCount: 1}
	b := models.ParseResult{PageCount: 2}
	d := models.ParseResult{PageCount: 3}

	keyA := cacheKey([]byte("statement a"))
	keyB := cacheKey([]byte("statement b"))
	keyD := cacheKey([]byte("statement d"))

	c.put(keyA, a)
	c.put(keyB, b)

	if got, ok := c.get(keyA); !ok || got.PageCount != 1 {
		t.Fatalf("get(a) = %+v, %v", got, ok)
	}

	// Capacity 2: inserting a third entry evicts the least recently
	// used, which is b after the get above.
	c.put(keyD, d)
	if _, ok := c.get(keyB); ok {
		t.Error("expected b to be evicted")
	}
	if _, ok := c.get(keyA); !ok {
		t.Error("expected a to survive")
	}
	if _, ok := c.get(keyD); !ok {
		t.Error("expected d to be present")
	}
}

func TestCacheKeyIsContentAddressed(t *testing.T) {
	if cacheKey([]byte("one")) == cacheKey([]byte("two")) {
		t.Error("different content produced the same key")
	}
	if cacheKey([]byte("same")) != cacheKey([]byte("same")) {
		t.Error("identical content produced different keys")
	}
}
