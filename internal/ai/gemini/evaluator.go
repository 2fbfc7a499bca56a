package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/resume-screener/internal/ai"
	"github.com/spigell/resume-screener/internal/resume"
	"github.com/spigell/resume-screener/internal/utils"
)

//go:embed evaluate_prompt.md
var evaluatePrompt string

const defaultTemperature float32 = 0.2

// Evaluator scores parsed resumes against a job description.
type Evaluator struct {
	generator    contentGenerator
	logger       *zap.Logger
	temperature  float32
	maxLogLength int
}

var _ ai.Evaluator = (*Evaluator)(nil)

type assessmentPayload struct {
	Score      float64 `mapstructure:"score"`
	Strengths  string  `mapstructure:"strengths"`
	Weaknesses string  `mapstructure:"weaknesses"`
	Reasoning  string  `mapstructure:"reasoning"`
}

// NewEvaluator creates an Evaluator. A non-positive temperature selects the default.
func NewEvaluator(generator contentGenerator, log *zap.Logger, temperature float32, maxLogLength int) *Evaluator {
	if log == nil {
		log = zap.NewNop()
	}
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	return &Evaluator{generator: generator, logger: log, temperature: temperature, maxLogLength: maxLogLength}
}

// Evaluate implements ai.Evaluator.
func (e *Evaluator) Evaluate(ctx context.Context, parsed *resume.Parsed, jobDescription string) (*ai.Assessment, error) {
	assessment, err := e.evaluate(ctx, parsed, jobDescription)
	if err != nil {
		return nil, &ai.EvaluationError{Err: err}
	}
	return assessment, nil
}

func (e *Evaluator) evaluate(ctx context.Context, parsed *resume.Parsed, jobDescription string) (*ai.Assessment, error) {
	if e == nil || e.generator == nil {
		return nil, errors.New("evaluator is not initialized")
	}
	if parsed == nil {
		return nil, errors.New("parsed resume is required")
	}

	prompt, err := buildEvaluationPrompt(parsed, jobDescription)
	if err != nil {
		return nil, err
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(e.temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   assessmentSchema,
	}

	raw, err := e.generator.Generate(ctx, genai.Text(prompt), cfg)
	if err != nil {
		return nil, err
	}

	var payload assessmentPayload
	if err := decodeResponse(raw, assessmentValidator, &payload); err != nil {
		e.logger.Debug("unexpected evaluation response",
			zap.String("response", utils.TruncateForLog(raw, e.maxLogLength)),
		)
		return nil, err
	}

	if math.IsNaN(payload.Score) || payload.Score < 0 || payload.Score > 100 {
		return nil, fmt.Errorf("score %v is outside 0..100", payload.Score)
	}

	return &ai.Assessment{
		Score:      int(math.Round(payload.Score)),
		Strengths:  strings.TrimSpace(payload.Strengths),
		Weaknesses: strings.TrimSpace(payload.Weaknesses),
		Reasoning:  strings.TrimSpace(payload.Reasoning),
	}, nil
}

func buildEvaluationPrompt(parsed *resume.Parsed, jobDescription string) (string, error) {
	data, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal resume: %w", err)
	}

	return strings.NewReplacer(
		"{{JOB_DESCRIPTION}}", strings.TrimSpace(jobDescription),
		"{{RESUME_JSON}}", string(data),
	).Replace(evaluatePrompt), nil
}
