package screening

import (
	"time"

	"github.com/spigell/resume-screener/internal/ai"
	"github.com/spigell/resume-screener/internal/ats"
	"github.com/spigell/resume-screener/internal/evidence"
	"github.com/spigell/resume-screener/internal/resume"
)

// Record is the screening state of one uploaded file against one job.
// Fields are only ever filled in; once Status is terminal the record is final.
type Record struct {
	ID                    string           `json:"id"`
	FileName              string           `json:"fileName"`
	JobID                 string           `json:"jobId"`
	Status                Status           `json:"status"`
	ParsedData            *resume.Parsed   `json:"parsedData,omitempty"`
	SystemScreeningResult ats.Result       `json:"systemScreeningResult,omitempty"`
	Evidence              *evidence.Signal `json:"evidence,omitempty"`
	ScoringResult         *ai.Assessment   `json:"scoringResult,omitempty"`
	FinalScore            *int             `json:"finalScore,omitempty"`
	Error                 string           `json:"error,omitempty"`
	CreatedAt             time.Time        `json:"createdAt"`
	UpdatedAt             time.Time        `json:"updatedAt"`
}

// Name returns the candidate name when known, otherwise the file name.
func (r Record) Name() string {
	if r.ParsedData != nil && r.ParsedData.Name != "" {
		return r.ParsedData.Name
	}
	return r.FileName
}

// clone returns a copy that shares no mutable state with r.
func (r Record) clone() Record {
	out := r
	if r.ParsedData != nil {
		parsed := *r.ParsedData
		parsed.Skills = append([]string(nil), r.ParsedData.Skills...)
		parsed.Experience = append([]resume.Experience(nil), r.ParsedData.Experience...)
		for i := range parsed.Experience {
			parsed.Experience[i].Responsibilities = append([]string(nil), parsed.Experience[i].Responsibilities...)
		}
		parsed.Education = append([]resume.Education(nil), r.ParsedData.Education...)
		parsed.Publications = append([]string(nil), r.ParsedData.Publications...)
		out.ParsedData = &parsed
	}
	if r.Evidence != nil {
		ev := *r.Evidence
		ev.Notes = append([]string(nil), r.Evidence.Notes...)
		out.Evidence = &ev
	}
	if r.ScoringResult != nil {
		scoring := *r.ScoringResult
		out.ScoringResult = &scoring
	}
	if r.FinalScore != nil {
		score := *r.FinalScore
		out.FinalScore = &score
	}
	return out
}
