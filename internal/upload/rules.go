package upload

import (
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/ai"
	"github.com/spigell/resume-screener/internal/logger"
)

// Rule is a single filtering step applied to uploaded documents.
type Rule interface {
	Name() string
	Apply(docs []ai.Document) ([]ai.Document, []Skipped)
}

// Step describes the result of executing a rule.
type Step struct {
	Name    string `json:"name"`
	Initial int    `json:"initial"`
	Dropped int    `json:"dropped"`
	Left    int    `json:"left"`
}

// DefaultRules keeps PDF documents and drops repeated uploads, in that order.
func DefaultRules() []Rule {
	return []Rule{PDFOnly(), Deduplicate()}
}

// Run executes the rules sequentially. The order of accepted documents is preserved.
func Run(log *zap.Logger, rules []Rule, docs []ai.Document) ([]ai.Document, []Skipped, []Step) {
	if log == nil {
		log = zap.NewNop()
	}

	var skipped []Skipped
	steps := make([]Step, 0, len(rules))
	for _, rule := range rules {
		initial := len(docs)
		left, dropped := rule.Apply(docs)
		skipped = append(skipped, dropped...)

		step := Step{Name: rule.Name(), Initial: initial, Dropped: len(dropped), Left: len(left)}
		steps = append(steps, step)

		for _, s := range dropped {
			log.Warn("skipping file",
				zap.String("rule", rule.Name()),
				zap.String(logger.FieldFileName, s.Name),
				zap.String("reason", s.Reason),
			)
		}
		log.Info("upload filter step",
			zap.String("name", step.Name),
			zap.Int("initial", step.Initial),
			zap.Int("dropped", step.Dropped),
			zap.Int("left", step.Left),
		)

		docs = left
	}

	return docs, skipped, steps
}

type pdfOnly struct{}

// PDFOnly creates a rule that removes documents whose content is not a PDF.
func PDFOnly() Rule { return pdfOnly{} }

func (pdfOnly) Name() string { return "pdf_only" }

func (pdfOnly) Apply(docs []ai.Document) ([]ai.Document, []Skipped) {
	kept := make([]ai.Document, 0, len(docs))
	var dropped []Skipped
	for _, doc := range docs {
		if !mimetype.Detect(doc.Data).Is(PDF) {
			dropped = append(dropped, Skipped{Name: doc.Name, Reason: "not a PDF document"})
			continue
		}
		doc.MIMEType = PDF
		kept = append(kept, doc)
	}
	return kept, dropped
}

type deduplicate struct{}

// Deduplicate creates a rule that removes repeated uploads with the same name and size.
func Deduplicate() Rule { return deduplicate{} }

func (deduplicate) Name() string { return "duplicates" }

func (deduplicate) Apply(docs []ai.Document) ([]ai.Document, []Skipped) {
	type key struct {
		name string
		size int
	}

	seen := make(map[key]struct{}, len(docs))
	kept := make([]ai.Document, 0, len(docs))
	var dropped []Skipped
	for _, doc := range docs {
		k := key{name: doc.Name, size: len(doc.Data)}
		if _, dup := seen[k]; dup {
			dropped = append(dropped, Skipped{Name: doc.Name, Reason: "duplicate upload"})
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, doc)
	}
	return kept, dropped
}
