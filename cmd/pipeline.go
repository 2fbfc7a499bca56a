package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/ai"
	"github.com/spigell/resume-screener/internal/ai/gemini"
	"github.com/spigell/resume-screener/internal/jobs"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/pdftext"
	"github.com/spigell/resume-screener/internal/screening"
	"github.com/spigell/resume-screener/internal/secrets"
)

// newOrchestrator wires the configured AI provider into a screening orchestrator.
func newOrchestrator(ctx context.Context, config *Config, log *zap.Logger) (*screening.Orchestrator, error) {
	extractor, evaluator, err := newAIAdapters(ctx, config.AI, log)
	if err != nil {
		return nil, err
	}

	if config.Screening.PDFFallback {
		reader, err := pdftext.NewReader(config.Screening.PDFLicenseKey, 0, log.Named("pdftext"))
		if err != nil {
			return nil, err
		}
		extractor = pdftext.WithGitHubFallback(extractor, reader, log.Named("pdftext"))
	}

	return screening.New(extractor, evaluator, screening.Config{
		MaxConcurrency: config.Screening.MaxConcurrency,
		Logger:         log.Named("screening"),
	}), nil
}

func newAIAdapters(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Extractor, ai.Evaluator, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:    "gemini api key",
		Value:   cfg.Gemini.APIKey,
		File:    cfg.Gemini.APIKeyFile,
		Env:     "GEMINI_API_KEY",
		FileEnv: "GEMINI_API_KEY_FILE",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	genLogger := log.With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries))

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, nil, err
	}
	generator.SetRequestsPerMinute(cfg.Gemini.RequestsPerMinute)

	adapterLogger := logger.WithCommonFields(log, "gemini", generator.Model())

	extractor := gemini.NewExtractor(generator, adapterLogger, cfg.Gemini.MaxLogLength)
	evaluator := gemini.NewEvaluator(generator, adapterLogger, cfg.Gemini.Temperature, cfg.Gemini.MaxLogLength)

	return extractor, evaluator, nil
}

func newCatalog(config *Config) (*jobs.Catalog, error) {
	catalog, err := jobs.NewCatalog(config.Jobs)
	if err != nil {
		return nil, fmt.Errorf("loading jobs: %w", err)
	}
	return catalog, nil
}
