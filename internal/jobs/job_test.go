package jobs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frontendJob() Spec {
	return Spec{
		ID:              "job-1",
		Title:           "Senior Frontend React Engineer",
		Description:     "Build modern web applications.",
		EmploymentType:  "Full-time",
		ExperienceLevel: LevelSenior,
		RequiredSkills: []Skill{
			{Name: "React", Weight: 95},
			{Name: "TypeScript", Weight: 90},
			{Name: "Tailwind CSS", Weight: 80},
		},
		Status: StatusActive,
	}
}

func TestRequirementsMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level     ExperienceLevel
		years     float64
		seniority Seniority
	}{
		{LevelEntry, 0, SeniorityJunior},
		{LevelMid, 2, SeniorityMid},
		{LevelSenior, 5, SenioritySenior},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			t.Parallel()
			spec := frontendJob()
			spec.ExperienceLevel = tt.level

			req := spec.Requirements()
			assert.Equal(t, tt.years, req.MinExperienceYears)
			assert.Equal(t, tt.seniority, req.Seniority)
			assert.Equal(t, []string{"React", "TypeScript", "Tailwind CSS"}, req.Skills)
		})
	}
}

func TestDescriptionTextIsDeterministic(t *testing.T) {
	spec := frontendJob()

	want := "Senior Frontend React Engineer\n\nBuild modern web applications.\n\nRequired Skills:\nReact, TypeScript, Tailwind CSS"
	assert.Equal(t, want, spec.DescriptionText())
	assert.Equal(t, spec.DescriptionText(), spec.DescriptionText())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Spec)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Spec) {}},
		{name: "missing title", mutate: func(s *Spec) { s.Title = "" }, wantErr: true},
		{name: "unknown level", mutate: func(s *Spec) { s.ExperienceLevel = "Principal" }, wantErr: true},
		{name: "weight above range", mutate: func(s *Spec) { s.RequiredSkills[0].Weight = 101 }, wantErr: true},
		{name: "weight below range", mutate: func(s *Spec) { s.RequiredSkills[1].Weight = 0 }, wantErr: true},
		{name: "unnamed skill", mutate: func(s *Spec) { s.RequiredSkills[2].Name = "" }, wantErr: true},
		{name: "no skills", mutate: func(s *Spec) { s.RequiredSkills = nil }},
		{name: "unknown status", mutate: func(s *Spec) { s.Status = "Archived" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			spec := frontendJob()
			tt.mutate(&spec)

			err := spec.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCatalog(t *testing.T) {
	draft := frontendJob()
	draft.ID = "job-2"
	draft.Title = "Lead Backend Engineer"
	draft.Status = ""

	catalog, err := NewCatalog([]Spec{frontendJob(), draft})
	require.NoError(t, err)

	got, err := catalog.Get("job-2")
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, got.Status, "empty status defaults to draft")

	got.RequiredSkills[0].Name = "mutated"
	again, err := catalog.Get("job-2")
	require.NoError(t, err)
	assert.Equal(t, "React", again.RequiredSkills[0].Name, "catalog hands out copies")

	active := catalog.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "job-1", active[0].ID)

	require.NoError(t, catalog.Delete("job-1"))
	_, err = catalog.Get("job-1")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(catalog.Delete("job-1"), ErrNotFound))
	assert.Len(t, catalog.List(), 1)
}

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	_, err := NewCatalog([]Spec{frontendJob(), frontendJob()})
	assert.Error(t, err)
}
