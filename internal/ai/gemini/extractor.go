package gemini

import (
	"context"
	_ "embed"
	"errors"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/resume-screener/internal/ai"
	"github.com/spigell/resume-screener/internal/resume"
	"github.com/spigell/resume-screener/internal/utils"
)

//go:embed extract_prompt.md
var extractPrompt string

const defaultMaxLogLength = 2000

// contentGenerator is satisfied by *Generator.
type contentGenerator interface {
	Generate(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error)
}

// Extractor turns resume documents into structured data using Gemini's inline document understanding.
type Extractor struct {
	generator    contentGenerator
	logger       *zap.Logger
	maxLogLength int
}

var _ ai.Extractor = (*Extractor)(nil)

// NewExtractor creates an Extractor. maxLogLength limits how much raw model output is logged on failures.
func NewExtractor(generator contentGenerator, log *zap.Logger, maxLogLength int) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	return &Extractor{generator: generator, logger: log, maxLogLength: maxLogLength}
}

// Extract implements ai.Extractor.
func (e *Extractor) Extract(ctx context.Context, doc ai.Document) (*resume.Parsed, error) {
	parsed, err := e.extract(ctx, doc)
	if err != nil {
		return nil, &ai.ExtractionError{Document: doc.Name, Err: err}
	}
	return parsed, nil
}

func (e *Extractor) extract(ctx context.Context, doc ai.Document) (*resume.Parsed, error) {
	if e == nil || e.generator == nil {
		return nil, errors.New("extractor is not initialized")
	}
	if len(doc.Data) == 0 {
		return nil, errors.New("document is empty")
	}

	mimeType := strings.TrimSpace(doc.MIMEType)
	if mimeType == "" {
		mimeType = "application/pdf"
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(doc.Data, mimeType),
			genai.NewPartFromText(extractPrompt),
		}, genai.RoleUser),
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   resumeSchema,
	}

	raw, err := e.generator.Generate(ctx, contents, cfg)
	if err != nil {
		return nil, err
	}

	var parsed resume.Parsed
	if err := decodeResponse(raw, resumeValidator, &parsed); err != nil {
		e.logger.Debug("unexpected extraction response",
			zap.String("document", doc.Name),
			zap.String("response", utils.TruncateForLog(raw, e.maxLogLength)),
		)
		return nil, err
	}

	parsed.Skills = parsed.UniqueSkills()
	parsed.GitHubURL = strings.TrimSpace(parsed.GitHubURL)

	e.logger.Debug("resume extracted",
		zap.String("document", doc.Name),
		zap.Int("skills", len(parsed.Skills)),
		zap.Int("positions", len(parsed.Experience)),
	)

	return &parsed, nil
}
