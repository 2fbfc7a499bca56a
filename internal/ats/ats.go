// Package ats implements the deterministic applicant tracking rules that
// gate every candidate before any AI opinion is considered.
package ats

import (
	"encoding/json"
	"strings"

	"github.com/spigell/resume-screener/internal/evidence"
	"github.com/spigell/resume-screener/internal/jobs"
)

// Outcome discriminates the two Result variants.
type Outcome string

const (
	OutcomeRejected  Outcome = "REJECTED"
	OutcomeEvaluated Outcome = "EVALUATED"
)

const (
	baseScore = 100

	// RejectBelow is the score under which a candidate is rejected.
	RejectBelow = 40
	// MinSkillRatio is the share of required skills a candidate must match.
	MinSkillRatio = 0.5

	skillPenalty      = 40
	experiencePenalty = 30
	studentPenalty    = 50
)

const (
	ReasonSkills     = "Less than 50% required skills matched"
	ReasonExperience = "Insufficient professional experience"
	ReasonStudent    = "Student profile not suitable for senior role"
)

// Input is everything the rules look at.
type Input struct {
	CandidateSkills    []string
	ExperienceYears    float64
	Seniority          jobs.Seniority
	IsStudent          bool
	RequiredSkills     []string
	MinExperienceYears float64
}

// Result is either Rejected or Evaluated.
type Result interface {
	Outcome() Outcome
	// FitScore is the authoritative system-side score.
	FitScore() int
	isResult()
}

// Rejected is returned when the rules score a candidate below RejectBelow.
type Rejected struct {
	Score   int
	Reasons []string
}

func (Rejected) Outcome() Outcome { return OutcomeRejected }
func (r Rejected) FitScore() int  { return r.Score }
func (Rejected) isResult()        {}

func (r Rejected) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Status   Outcome  `json:"status"`
		FitScore int      `json:"fitScore"`
		Reasons  []string `json:"atsReasons"`
	}{OutcomeRejected, r.Score, nonNil(r.Reasons)})
}

// Evaluated is returned for candidates that pass the rules.
type Evaluated struct {
	Score    int
	ATSScore int
	Evidence evidence.Signal
}

func (Evaluated) Outcome() Outcome { return OutcomeEvaluated }
func (e Evaluated) FitScore() int  { return e.Score }
func (Evaluated) isResult()        {}

func (e Evaluated) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Status   Outcome         `json:"status"`
		FitScore int             `json:"fitScore"`
		ATSScore int             `json:"atsScore"`
		Evidence evidence.Signal `json:"evidenceReview"`
	}{OutcomeEvaluated, e.Score, e.ATSScore, e.Evidence})
}

// MatchRatio is the share of required skills present in the candidate skills,
// compared case-insensitively. No required skills means a ratio of 1.
func MatchRatio(required, candidate []string) float64 {
	if len(required) == 0 {
		return 1
	}

	have := make(map[string]struct{}, len(candidate))
	for _, skill := range candidate {
		have[normalize(skill)] = struct{}{}
	}

	matched := 0
	for _, skill := range required {
		if _, ok := have[normalize(skill)]; ok {
			matched++
		}
	}

	return float64(matched) / float64(len(required))
}

// Score applies the penalty rules and returns the clamped score with the reasons
// for every penalty applied, in rule order.
func Score(in Input) (int, []string) {
	score := baseScore
	reasons := make([]string, 0, 3)

	if MatchRatio(in.RequiredSkills, in.CandidateSkills) < MinSkillRatio {
		score -= skillPenalty
		reasons = append(reasons, ReasonSkills)
	}

	if in.ExperienceYears < in.MinExperienceYears {
		score -= experiencePenalty
		reasons = append(reasons, ReasonExperience)
	}

	if in.Seniority == jobs.SenioritySenior && in.IsStudent {
		score -= studentPenalty
		reasons = append(reasons, ReasonStudent)
	}

	return max(0, min(score, baseScore)), reasons
}

// Evaluate scores the candidate and builds the Result. The evidence signal is
// attached only when the candidate is not rejected.
func Evaluate(in Input, ev evidence.Signal) Result {
	score, reasons := Score(in)
	if score < RejectBelow {
		return Rejected{Score: score, Reasons: reasons}
	}

	return Evaluated{Score: score, ATSScore: score, Evidence: ev}
}

func normalize(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
