// Package gemini implements resume extraction and candidate evaluation on the
// Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/utils"
)

const (
	defaultModel    = "gemini-2.5-flash"
	providerName    = "gemini"
	initialBackoff  = time.Second
	maxRetryBackoff = 30 * time.Second
)

var retryAfterRe = regexp.MustCompile(`(?i)retry (?:after|in) (\d+(?:\.\d+)?)\s*s`)

// wait is replaced in tests.
var wait = utils.WaitFor

// modelsAPI is the subset of *genai.Models used by the generator.
type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator wraps the Google GenAI client and retries transient API failures.
type Generator struct {
	models     modelsAPI
	model      string
	maxRetries int
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
// maxRetries is the total number of attempts per request; values below 1 mean a single attempt.
func NewGenerator(ctx context.Context, apiKey, model string, maxRetries int, log *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Generator{
		models:     client.Models,
		model:      model,
		maxRetries: maxRetries,
		logger:     logger.WithCommonFields(log, providerName, model),
	}, nil
}

// SetRequestsPerMinute throttles outgoing requests, retries included. Zero disables throttling.
func (g *Generator) SetRequestsPerMinute(n int) {
	if n <= 0 {
		g.limiter = nil
		return
	}
	g.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), 1)
}

// Generate sends the contents to Gemini and returns the concatenated text of the response.
func (g *Generator) Generate(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	if g == nil || g.models == nil {
		return "", errors.New("gemini generator is not initialized")
	}
	if len(contents) == 0 {
		return "", errors.New("contents must not be empty")
	}

	attempts := max(g.maxRetries, 1)

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if g.limiter != nil {
			if err := g.limiter.Wait(ctx); err != nil {
				return "", fmt.Errorf("waiting for rate limit: %w", err)
			}
		}

		resp, err := g.models.GenerateContent(ctx, g.model, contents, config)
		if err == nil {
			return responseText(resp)
		}
		lastErr = err

		delay, retryable := retryDelay(err, attempt)
		if !retryable || attempt == attempts-1 {
			break
		}

		g.log().Warn("gemini request failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", attempts),
			zap.Duration("backoff", delay),
			zap.Error(err),
		)

		if err := wait(ctx, delay); err != nil {
			return "", err
		}
	}

	return "", fmt.Errorf("generate content: %w", lastErr)
}

// Model returns the configured model name.
func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

func (g *Generator) log() *zap.Logger {
	if g.logger == nil {
		return zap.NewNop()
	}
	return g.logger
}

// retryDelay decides whether err is transient and how long to wait before the next attempt.
func retryDelay(err error, attempt int) (time.Duration, bool) {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return 0, false
	}

	switch apiErr.Code {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
	default:
		return 0, false
	}

	backoff := time.Duration(float64(initialBackoff) * math.Pow(2, float64(attempt)))

	if m := retryAfterRe.FindStringSubmatch(apiErr.Message); m != nil {
		seconds, perr := strconv.ParseFloat(m[1], 64)
		if perr == nil {
			requested := time.Duration(seconds * float64(time.Second))
			if requested > maxRetryBackoff {
				return 0, false
			}
			backoff = max(backoff, requested)
		}
	}

	return min(backoff, maxRetryBackoff), true
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("gemini api returned no response")
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}
