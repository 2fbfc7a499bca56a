// Package evidence turns external resources listed by a candidate (a GitHub
// profile, publications) into qualitative signals and a bounded score boost.
package evidence

import "strings"

// Strength is the qualitative weight of a piece of evidence.
type Strength string

const (
	StrengthNone   Strength = "none"
	StrengthWeak   Strength = "weak"
	StrengthStrong Strength = "strong"
)

const (
	// MaxBoost is the upper bound of Signal.Boost.
	MaxBoost = 10
	// MinBoost is the lower bound of Signal.Boost.
	MinBoost = 0

	profileBoost     = 5
	publicationBoost = 3
)

const (
	noteProfile      = "GitHub profile provided"
	noteNoProfile    = "No GitHub profile provided"
	notePublications = "Publications listed"
)

// Input lists the resources a candidate supplied. Both fields are optional.
type Input struct {
	ProfileURL   string
	Publications []string
}

// Signal is the immutable outcome of Analyze.
type Signal struct {
	GitHubReviewed    bool     `json:"githubReviewed"`
	GitHubSignal      Strength `json:"githubSignal"`
	PublicationSignal Strength `json:"publicationSignal"`
	Boost             int      `json:"evidenceBoost"`
	Notes             []string `json:"notes"`
	Summary           string   `json:"evidenceSummary"`
}

// summaries is indexed by [hasProfile][hasPublications].
var summaries = [2][2]string{
	{
		"No external resources were detected.",
		"External resources reviewed: Publications were detected.",
	},
	{
		"External resources reviewed: GitHub profile was detected.",
		"External resources reviewed: GitHub profile and publications were detected.",
	},
}

// Analyze derives the evidence signal. It is pure and total.
func Analyze(in Input) Signal {
	sig := Signal{
		GitHubSignal:      StrengthNone,
		PublicationSignal: StrengthNone,
		Notes:             make([]string, 0, 2),
	}

	boost := 0

	hasProfile := strings.TrimSpace(in.ProfileURL) != ""
	if hasProfile {
		sig.GitHubReviewed = true
		sig.GitHubSignal = StrengthWeak
		boost += profileBoost
		sig.Notes = append(sig.Notes, noteProfile)
	} else {
		sig.Notes = append(sig.Notes, noteNoProfile)
	}

	hasPublications := len(in.Publications) > 0
	if hasPublications {
		sig.PublicationSignal = StrengthWeak
		boost += publicationBoost
		sig.Notes = append(sig.Notes, notePublications)
	}

	sig.Boost = clamp(boost)
	sig.Summary = summaries[index(hasProfile)][index(hasPublications)]

	return sig
}

func clamp(boost int) int {
	return max(MinBoost, min(boost, MaxBoost))
}

func index(b bool) int {
	if b {
		return 1
	}
	return 0
}
