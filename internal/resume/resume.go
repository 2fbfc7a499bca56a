// Package resume holds the structured candidate data produced by resume extraction
// and the facts the screening rules derive from it.
package resume

import "strings"

// Parsed is the structured form of an uploaded resume.
type Parsed struct {
	Name         string       `json:"name" mapstructure:"name"`
	Email        string       `json:"email" mapstructure:"email"`
	Phone        string       `json:"phone" mapstructure:"phone"`
	Summary      string       `json:"summary" mapstructure:"summary"`
	Skills       []string     `json:"skills" mapstructure:"skills"`
	Experience   []Experience `json:"experience" mapstructure:"experience"`
	Education    []Education  `json:"education" mapstructure:"education"`
	GitHubURL    string       `json:"githubUrl,omitempty" mapstructure:"githubUrl"`
	Publications []string     `json:"publications,omitempty" mapstructure:"publications"`
}

// Experience is a single position held by the candidate.
type Experience struct {
	Title            string   `json:"title" mapstructure:"title"`
	Company          string   `json:"company" mapstructure:"company"`
	Duration         string   `json:"duration" mapstructure:"duration"`
	Responsibilities []string `json:"responsibilities,omitempty" mapstructure:"responsibilities"`
}

// Education is a single degree entry.
type Education struct {
	Degree      string `json:"degree" mapstructure:"degree"`
	Institution string `json:"institution" mapstructure:"institution"`
	Year        string `json:"year,omitempty" mapstructure:"year"`
}

// UniqueSkills returns the skills with case-insensitive duplicates and blanks removed,
// keeping the first spelling seen.
func (p *Parsed) UniqueSkills() []string {
	if p == nil {
		return nil
	}

	seen := make(map[string]struct{}, len(p.Skills))
	out := make([]string, 0, len(p.Skills))
	for _, skill := range p.Skills {
		skill = strings.TrimSpace(skill)
		key := strings.ToLower(skill)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, skill)
	}
	return out
}

// Text flattens the free-text parts of the resume. It is used for URL discovery.
func (p *Parsed) Text() string {
	if p == nil {
		return ""
	}

	parts := []string{p.Summary}
	for _, exp := range p.Experience {
		parts = append(parts, exp.Title, exp.Company)
		parts = append(parts, exp.Responsibilities...)
	}
	for _, edu := range p.Education {
		parts = append(parts, edu.Degree, edu.Institution)
	}
	return strings.Join(parts, "\n")
}
