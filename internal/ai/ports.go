// Package ai defines the two external capabilities the screening pipeline
// depends on: turning a document into a structured resume, and scoring a
// resume against a job description.
package ai

import (
	"context"

	"github.com/spigell/resume-screener/internal/resume"
)

// Document is an uploaded resume file.
type Document struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Assessment is the holistic opinion returned by the evaluator.
type Assessment struct {
	Score      int    `json:"score"`
	Strengths  string `json:"strengths"`
	Weaknesses string `json:"weaknesses"`
	Reasoning  string `json:"reasoning"`
}

// Extractor converts a raw document into structured candidate data.
// Failures are reported as *ExtractionError.
type Extractor interface {
	Extract(ctx context.Context, doc Document) (*resume.Parsed, error)
}

// Evaluator scores a parsed resume against a job description.
// Failures are reported as *EvaluationError.
type Evaluator interface {
	Evaluate(ctx context.Context, parsed *resume.Parsed, jobDescription string) (*Assessment, error)
}
