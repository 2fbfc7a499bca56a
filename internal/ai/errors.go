package ai

import "fmt"

// ExtractionError reports a failed resume extraction.
type ExtractionError struct {
	Document string
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.Document == "" {
		return fmt.Sprintf("resume extraction failed: %v", e.Err)
	}
	return fmt.Sprintf("resume extraction failed for %s: %v", e.Document, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// EvaluationError reports a failed AI evaluation.
type EvaluationError struct {
	Err error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("candidate evaluation failed: %v", e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }
