// Command server runs the statement analysis HTTP API.
package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/finlens/statement-insights/internal/api"
	"github.com/finlens/statement-insights/internal/categorizer"
	"github.com/finlens/statement-insights/internal/config"
	"github.com/finlens/statement-insights/internal/logging"
	"github.com/finlens/statement-insights/internal/pipeline"
)

func main() {
	cfg := config.Load()
	logger := logging.New("api")

	rules := categorizer.DefaultRuleset()
	if cfg.CategoryRules != "" {
		loaded, err := categorizer.LoadRuleset(cfg.CategoryRules)
		if err != nil {
			logger.Fatal("failed to load rules", "path", cfg.CategoryRules, "err", err)
		}
		rules = loaded
		logger.Info("loaded categorization rules", "path", cfg.CategoryRules)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.MaxUploadMB * 1024 * 1024,
	})
	app.Use(recover.New())

	handler := api.NewHandler(logger, pipeline.New(logger, rules), cfg.CacheSize)
	handler.Register(app)

	logger.Info("listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
}
