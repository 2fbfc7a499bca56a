// Package upload turns user supplied files into documents for screening.
package upload

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/spigell/resume-screener/internal/ai"
)

// PDF is the only document type accepted for screening.
const PDF = "application/pdf"

// Skipped explains why a file was not accepted.
type Skipped struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// NewDocument sniffs the content type of data.
func NewDocument(name string, data []byte) ai.Document {
	return ai.Document{
		Name:     name,
		MIMEType: mimetype.Detect(data).String(),
		Data:     data,
	}
}

// ReadFile loads a document from disk.
func ReadFile(path string) (ai.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ai.Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return NewDocument(filepath.Base(path), data), nil
}
