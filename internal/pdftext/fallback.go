package pdftext

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/ai"
	"github.com/spigell/resume-screener/internal/resume"
)

// TextSource returns the plain text of a document.
type TextSource interface {
	Text(data []byte) (string, error)
}

// GitHubFallback decorates an extractor: when the structured result has no
// GitHub profile, the link is searched in the parsed text and then in the raw
// PDF text layer.
type GitHubFallback struct {
	next   ai.Extractor
	source TextSource
	logger *zap.Logger
}

var _ ai.Extractor = (*GitHubFallback)(nil)

// WithGitHubFallback wraps next. source may be nil, in which case only the parsed text is searched.
func WithGitHubFallback(next ai.Extractor, source TextSource, log *zap.Logger) *GitHubFallback {
	if log == nil {
		log = zap.NewNop()
	}
	return &GitHubFallback{next: next, source: source, logger: log}
}

// Extract implements ai.Extractor.
func (f *GitHubFallback) Extract(ctx context.Context, doc ai.Document) (*resume.Parsed, error) {
	parsed, err := f.next.Extract(ctx, doc)
	if err != nil || parsed == nil || strings.TrimSpace(parsed.GitHubURL) != "" {
		return parsed, err
	}

	if url := resume.FindGitHubURL(parsed.Text()); url != "" {
		parsed.GitHubURL = url
		return parsed, nil
	}

	if f.source == nil || !isPDF(doc) {
		return parsed, nil
	}

	text, err := f.source.Text(doc.Data)
	if err != nil {
		// Best effort: the structured result is still usable without a profile link.
		f.logger.Debug("pdf text fallback failed", zap.String("document", doc.Name), zap.Error(err))
		return parsed, nil
	}

	if url := resume.FindGitHubURL(text); url != "" {
		f.logger.Debug("github profile found in pdf text", zap.String("document", doc.Name), zap.String("url", url))
		parsed.GitHubURL = url
	}
	return parsed, nil
}

func isPDF(doc ai.Document) bool {
	if doc.MIMEType != "" {
		return doc.MIMEType == "application/pdf"
	}
	return strings.HasSuffix(strings.ToLower(doc.Name), ".pdf")
}
