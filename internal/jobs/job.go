// Package jobs describes the roles candidates are screened against.
package jobs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ExperienceLevel is the level a role is advertised at.
type ExperienceLevel string

const (
	LevelEntry  ExperienceLevel = "Entry"
	LevelMid    ExperienceLevel = "Mid-level"
	LevelSenior ExperienceLevel = "Senior"
)

// Seniority is the rule-engine view of an ExperienceLevel.
type Seniority string

const (
	SeniorityJunior Seniority = "junior"
	SeniorityMid    Seniority = "mid"
	SenioritySenior Seniority = "senior"
)

// Status is the lifecycle state of a job posting.
type Status string

const (
	StatusDraft  Status = "Draft"
	StatusActive Status = "Active"
	StatusClosed Status = "Closed"
)

// Skill is a required skill with an importance weight in [1,100].
type Skill struct {
	Name   string `json:"name" mapstructure:"name" validate:"required"`
	Weight int    `json:"weight" mapstructure:"weight" validate:"min=1,max=100"`
}

// Spec is an immutable description of a role.
type Spec struct {
	ID               string          `json:"id" mapstructure:"id" validate:"required"`
	Title            string          `json:"title" mapstructure:"title" validate:"required"`
	Description      string          `json:"description" mapstructure:"description"`
	EmploymentType   string          `json:"employmentType,omitempty" mapstructure:"employment-type" validate:"omitempty,oneof=Full-time Part-time Contract Remote Hybrid"`
	ExperienceLevel  ExperienceLevel `json:"experienceLevel" mapstructure:"experience-level" validate:"required,oneof=Entry Mid-level Senior"`
	RequiredSkills   []Skill         `json:"requiredSkills" mapstructure:"required-skills" validate:"dive"`
	Responsibilities []string        `json:"responsibilities,omitempty" mapstructure:"responsibilities"`
	Status           Status          `json:"status" mapstructure:"status" validate:"omitempty,oneof=Draft Active Closed"`
}

// Requirements is what the rule engine needs to know about a role.
type Requirements struct {
	Skills             []string
	MinExperienceYears float64
	Seniority          Seniority
}

var (
	minExperience = map[ExperienceLevel]float64{
		LevelEntry:  0,
		LevelMid:    2,
		LevelSenior: 5,
	}

	seniorities = map[ExperienceLevel]Seniority{
		LevelEntry:  SeniorityJunior,
		LevelMid:    SeniorityMid,
		LevelSenior: SenioritySenior,
	}
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the spec against its field constraints.
func (s *Spec) Validate() error {
	if s == nil {
		return errors.New("job spec is required")
	}

	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid job spec %q: %s", s.ID, strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid job spec %q: %w", s.ID, err)
	}

	return nil
}

// SkillNames returns the required skill names in the order they were declared.
func (s *Spec) SkillNames() []string {
	names := make([]string, 0, len(s.RequiredSkills))
	for _, skill := range s.RequiredSkills {
		names = append(names, skill.Name)
	}
	return names
}

// Requirements maps the spec onto the rule engine inputs.
// Unknown experience levels are treated as Entry.
func (s *Spec) Requirements() Requirements {
	seniority, ok := seniorities[s.ExperienceLevel]
	if !ok {
		seniority = SeniorityJunior
	}

	return Requirements{
		Skills:             s.SkillNames(),
		MinExperienceYears: minExperience[s.ExperienceLevel],
		Seniority:          seniority,
	}
}

// DescriptionText renders the job as the plain text handed to the AI evaluator.
// The output depends only on the spec, skill order included.
func (s *Spec) DescriptionText() string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(s.Title))
	b.WriteString("\n\n")
	b.WriteString(strings.TrimSpace(s.Description))
	b.WriteString("\n\nRequired Skills:\n")
	b.WriteString(strings.Join(s.SkillNames(), ", "))
	return b.String()
}
