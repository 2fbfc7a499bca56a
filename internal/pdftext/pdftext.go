// Package pdftext reads the text layer of PDF resumes. The screening pipeline
// uses it to find profile links the structured extraction missed.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/unidoc/unipdf/v3/common/license"
	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
	"go.uber.org/zap"
)

var (
	licenseOnce sync.Once
	licenseErr  error
)

// Reader extracts plain text from PDF documents.
type Reader struct {
	logger   *zap.Logger
	maxPages int
}

// NewReader creates a Reader. A non-empty licenseKey is registered with unipdf
// once per process. maxPages limits how many pages are read; zero reads all.
func NewReader(licenseKey string, maxPages int, log *zap.Logger) (*Reader, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if key := strings.TrimSpace(licenseKey); key != "" {
		licenseOnce.Do(func() {
			licenseErr = license.SetMeteredKey(key)
		})
		if licenseErr != nil {
			return nil, fmt.Errorf("register pdf license: %w", licenseErr)
		}
	}
	return &Reader{logger: log, maxPages: maxPages}, nil
}

// Text returns the concatenated text of the document's pages. Pages that cannot
// be read are skipped; an error is returned only when no page yields text.
func (r *Reader) Text(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("pdf is empty")
	}

	pdfReader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		return "", fmt.Errorf("count pdf pages: %w", err)
	}
	if numPages == 0 {
		return "", errors.New("pdf has no pages")
	}
	if r.maxPages > 0 && numPages > r.maxPages {
		numPages = r.maxPages
	}

	var builder strings.Builder
	for i := 1; i <= numPages; i++ {
		page, err := pdfReader.GetPage(i)
		if err != nil {
			r.logger.Debug("skipping unreadable pdf page", zap.Int("page", i), zap.Error(err))
			continue
		}

		ex, err := extractor.New(page)
		if err != nil {
			r.logger.Debug("skipping pdf page", zap.Int("page", i), zap.Error(err))
			continue
		}

		text, err := ex.ExtractText()
		if err != nil {
			r.logger.Debug("skipping pdf page", zap.Int("page", i), zap.Error(err))
			continue
		}

		if text = strings.TrimSpace(text); text != "" {
			builder.WriteString(text)
			builder.WriteString("\n")
		}
	}

	result := strings.TrimSpace(builder.String())
	if result == "" {
		return "", errors.New("no text could be extracted from the pdf")
	}
	return result, nil
}
