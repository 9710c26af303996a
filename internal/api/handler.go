// Package api exposes the statement analysis pipeline over HTTP.
package api

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/finlens/statement-insights/internal/models"
	"github.com/finlens/statement-insights/internal/pipeline"
)

// Handler serves the analysis endpoints. The pipeline itself is a pure
// function of the uploaded bytes, so the handler owns the result cache.
type Handler struct {
	log      *log.Logger
	pipeline *pipeline.Pipeline
	cache    *resultCache
}

// NewHandler returns a Handler caching up to cacheSize results.
func NewHandler(logger *log.Logger, p *pipeline.Pipeline, cacheSize int) *Handler {
	return &Handler{
		log:      logger,
		pipeline: p,
		cache:    newResultCache(cacheSize),
	}
}

// Register mounts the routes on app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/health", h.HandleHealth)
	app.Post("/api/analyze", h.HandleAnalyze)
}

// HandleHealth reports service liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleAnalyze accepts a multipart PDF upload under the "file" field
// and returns the parse result. Unsupported formats map to 400,
// unreadable documents to 422, and anything unexpected to 500.
func (h *Handler) HandleAnalyze(c *fiber.Ctx) error {
	requestID := uuid.NewString()
	logger := h.log.With("request_id", requestID)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "no file uploaded",
			Details: "attach the statement PDF as multipart field \"file\"",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("open upload failed", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "failed to read upload",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Error("read upload failed", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "failed to read upload",
		})
	}

	// The cache is content-addressed, so the filename gate has to run
	// before the lookup or a bad extension could ride a cached result.
	if err := pipeline.CheckExtension(fileHeader.Filename); err != nil {
		return h.analysisError(c, logger, fileHeader.Filename, err)
	}

	key := cacheKey(data)
	if result, ok := h.cache.get(key); ok {
		logger.Info("cache hit", "file", fileHeader.Filename)
		return c.JSON(result)
	}

	result, err := h.pipeline.AnalyzeBytes(data, fileHeader.Filename)
	if err != nil {
		return h.analysisError(c, logger, fileHeader.Filename, err)
	}

	h.cache.put(key, result)
	logger.Info("statement analyzed",
		"file", fileHeader.Filename,
		"transactions", result.Summary.TotalTransactions)
	return c.JSON(result)
}

func (h *Handler) analysisError(c *fiber.Ctx, logger *log.Logger, filename string, err error) error {
	switch {
	case errors.Is(err, models.ErrUnsupportedFormat):
		logger.Warn("unsupported upload", "file", filename)
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "unsupported file format",
			Details: "only PDF statements are supported",
		})
	case errors.Is(err, models.ErrDocumentUnreadable):
		logger.Warn("unreadable document", "file", filename, "err", err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ErrorResponse{
			Error:   "document unreadable",
			Details: err.Error(),
		})
	default:
		logger.Error("analysis failed", "file", filename, "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "failed to analyze statement",
		})
	}
}
