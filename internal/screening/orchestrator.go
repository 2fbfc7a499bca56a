// Package screening runs uploaded resumes through extraction, the ATS rules,
// evidence analysis and AI evaluation, and keeps one Record per file.
package screening

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-screener/internal/ai"
	"github.com/spigell/resume-screener/internal/ats"
	"github.com/spigell/resume-screener/internal/evidence"
	"github.com/spigell/resume-screener/internal/jobs"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/resume"
)

const idPrefix = "candidate-"

// Config tunes an Orchestrator. The zero value is usable.
type Config struct {
	// MaxConcurrency limits how many files are processed at once; zero means no limit.
	MaxConcurrency int
	Logger         *zap.Logger
	Store          *Store
	Now            func() time.Time
}

// Orchestrator owns the lifecycle of screening records.
type Orchestrator struct {
	extractor      ai.Extractor
	evaluator      ai.Evaluator
	store          *Store
	logger         *zap.Logger
	now            func() time.Time
	maxConcurrency int
}

// New creates an Orchestrator over the two adapter ports.
func New(extractor ai.Extractor, evaluator ai.Evaluator, cfg Config) *Orchestrator {
	o := &Orchestrator{
		extractor:      extractor,
		evaluator:      evaluator,
		store:          cfg.Store,
		logger:         cfg.Logger,
		now:            cfg.Now,
		maxConcurrency: cfg.MaxConcurrency,
	}
	if o.store == nil {
		o.store = NewStore()
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.now == nil {
		o.now = time.Now
	}
	return o
}

// Store returns the record store the orchestrator writes to.
func (o *Orchestrator) Store() *Store {
	return o.store
}

// Batch tracks the records of one submission.
type Batch struct {
	ids   []string
	store *Store
	done  chan struct{}
}

// IDs returns the record identifiers in submission order.
func (b *Batch) IDs() []string {
	return append([]string(nil), b.ids...)
}

// Done is closed once every record of the batch is terminal.
func (b *Batch) Done() <-chan struct{} {
	return b.done
}

// Records returns the current state of the batch's records in submission order.
func (b *Batch) Records() []Record {
	out := make([]Record, 0, len(b.ids))
	for _, id := range b.ids {
		if rec, ok := b.store.Get(id); ok {
			out = append(out, rec)
		}
	}
	return out
}

// Wait blocks until every record is terminal or ctx is done. It never fails
// because of an individual candidate.
func (b *Batch) Wait(ctx context.Context) ([]Record, error) {
	select {
	case <-b.done:
		return b.Records(), nil
	case <-ctx.Done():
		return b.Records(), ctx.Err()
	}
}

// Screen submits the files and waits until all of them reached a terminal state.
// The only errors returned are validation errors.
func (o *Orchestrator) Screen(ctx context.Context, job *jobs.Spec, docs []ai.Document) ([]Record, error) {
	batch, err := o.Submit(ctx, job, docs)
	if err != nil {
		return nil, err
	}
	<-batch.Done()
	return batch.Records(), nil
}

// Submit creates a pending record per document and starts processing them in
// the background. ctx is handed to the adapters; cancelling it makes the
// remaining files end in the error state.
func (o *Orchestrator) Submit(ctx context.Context, job *jobs.Spec, docs []ai.Document) (*Batch, error) {
	if job == nil || strings.TrimSpace(job.ID) == "" {
		return nil, ErrNoJob
	}
	if len(docs) == 0 {
		return nil, ErrNoFiles
	}

	spec := *job
	now := o.now()
	records := make([]Record, len(docs))
	for i, doc := range docs {
		records[i] = Record{
			ID:        idPrefix + uuid.NewString(),
			FileName:  doc.Name,
			JobID:     spec.ID,
			Status:    StatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	if err := o.store.insert(records...); err != nil {
		return nil, err
	}

	batch := &Batch{store: o.store, done: make(chan struct{})}
	for _, rec := range records {
		batch.ids = append(batch.ids, rec.ID)
	}

	o.logger.Info("screening submitted",
		zap.String(logger.FieldJobID, spec.ID),
		zap.Int("files", len(docs)),
	)

	updates := make(chan Record)
	go o.collect(updates, batch.done)

	go func() {
		var g errgroup.Group
		if o.maxConcurrency > 0 {
			g.SetLimit(o.maxConcurrency)
		}
		for i := range records {
			rec, doc := records[i], docs[i]
			g.Go(func() error {
				o.process(ctx, spec, rec, doc, updates)
				return nil
			})
		}
		_ = g.Wait()
		close(updates)
	}()

	return batch, nil
}

// collect is the only writer of records after they are inserted.
func (o *Orchestrator) collect(updates <-chan Record, done chan<- struct{}) {
	defer close(done)
	for rec := range updates {
		if err := o.store.update(rec); err != nil {
			o.logger.Error("dropping record update", zap.Error(err))
			continue
		}
		logger.WithCandidate(o.logger, rec.ID, rec.FileName, rec.JobID).
			Debug("record updated", zap.String("status", string(rec.Status)))
	}
}

// process runs one file's sequence. rec is owned by this goroutine; every
// change is published to the collector as a copy.
func (o *Orchestrator) process(ctx context.Context, job jobs.Spec, rec Record, doc ai.Document, updates chan<- Record) {
	log := logger.WithCandidate(o.logger, rec.ID, rec.FileName, rec.JobID)

	emit := func(status Status) {
		rec.Status = status
		rec.UpdatedAt = o.now()
		updates <- rec.clone()
	}
	fail := func(stage string, err error) {
		rec.Error = err.Error()
		log.Warn("screening failed", zap.String("stage", stage), zap.Error(err))
		emit(StatusError)
	}

	defer func() {
		if r := recover(); r != nil {
			fail("internal", fmt.Errorf("screening panicked: %v", r))
		}
	}()

	emit(StatusProcessing)

	parsed, err := o.extractor.Extract(ctx, doc)
	if err == nil && parsed == nil {
		err = &ai.ExtractionError{Document: doc.Name, Err: errors.New("no resume data returned")}
	}
	if err != nil {
		fail("extraction", err)
		return
	}
	rec.ParsedData = parsed
	emit(StatusProcessing)

	result := o.evaluateRules(job, parsed)
	log.Debug("rules evaluated",
		zap.String("outcome", string(result.Outcome())),
		zap.Int("fit_score", result.FitScore()),
	)

	assessment, err := o.evaluator.Evaluate(ctx, parsed, job.DescriptionText())
	if err == nil && assessment == nil {
		err = &ai.EvaluationError{Err: errors.New("no assessment returned")}
	}
	if err != nil {
		fail("evaluation", err)
		return
	}

	final := Fuse(result, assessment.Score)

	rec.ScoringResult = assessment
	rec.SystemScreeningResult = result
	if evaluated, ok := result.(ats.Evaluated); ok {
		signal := evaluated.Evidence
		rec.Evidence = &signal
	}
	rec.FinalScore = &final
	emit(StatusCompleted)

	log.Info("candidate screened",
		zap.String("outcome", string(result.Outcome())),
		zap.Int("ai_score", assessment.Score),
		zap.Int("final_score", final),
	)
}

func (o *Orchestrator) evaluateRules(job jobs.Spec, parsed *resume.Parsed) ats.Result {
	facts := resume.DeriveFacts(parsed, o.now())
	req := job.Requirements()

	signal := evidence.Analyze(evidence.Input{
		ProfileURL:   facts.GitHubURL,
		Publications: facts.Publications,
	})

	return ats.Evaluate(ats.Input{
		CandidateSkills:    facts.Skills,
		ExperienceYears:    facts.ExperienceYears,
		Seniority:          req.Seniority,
		IsStudent:          facts.IsStudent,
		RequiredSkills:     req.Skills,
		MinExperienceYears: req.MinExperienceYears,
	}, signal)
}
