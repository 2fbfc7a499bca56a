package screening

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.ID)
	}
	return out
}

func TestRankByScore(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []Record{
		{ID: "pending", Status: StatusPending, CreatedAt: base},
		{ID: "late-84", Status: StatusCompleted, FinalScore: intPtr(84), CreatedAt: base.Add(time.Hour)},
		{ID: "top", Status: StatusCompleted, FinalScore: intPtr(97), CreatedAt: base.Add(2 * time.Hour)},
		{ID: "early-84", Status: StatusCompleted, FinalScore: intPtr(84), CreatedAt: base},
		{ID: "failed", Status: StatusError, CreatedAt: base.Add(-time.Hour)},
		{ID: "zero", Status: StatusCompleted, FinalScore: intPtr(0), CreatedAt: base},
	}

	RankByScore(records)

	assert.Equal(t, []string{"top", "early-84", "late-84", "zero", "failed", "pending"}, ids(records))
}

func TestRecommended(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rec  Record
		want bool
	}{
		{"at threshold", Record{Status: StatusCompleted, FinalScore: intPtr(RecommendedScore)}, true},
		{"above threshold", Record{Status: StatusCompleted, FinalScore: intPtr(100)}, true},
		{"below threshold", Record{Status: StatusCompleted, FinalScore: intPtr(RecommendedScore - 1)}, false},
		{"no score", Record{Status: StatusError}, false},
		{"not finished", Record{Status: StatusProcessing, FinalScore: intPtr(95)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.rec.Recommended())
		})
	}
}

func TestRecordJSONRecommended(t *testing.T) {
	data, err := json.Marshal(Record{ID: "a", FileName: "a.pdf", Status: StatusCompleted, FinalScore: intPtr(92)})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, true, decoded["recommended"])
	assert.Equal(t, "a.pdf", decoded["fileName"])
	assert.EqualValues(t, 92, decoded["finalScore"])

	data, err = json.Marshal(Record{ID: "b", Status: StatusPending})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"recommended":false`)
	assert.NotContains(t, string(data), "finalScore")
}

func TestSummarizeCountsRecommended(t *testing.T) {
	s := Summarize([]Record{
		{ID: "1", Status: StatusCompleted, FinalScore: intPtr(95)},
		{ID: "2", Status: StatusCompleted, FinalScore: intPtr(90)},
		{ID: "3", Status: StatusCompleted, FinalScore: intPtr(89)},
	})
	assert.Equal(t, 2, s.Recommended)
}

func TestStoreRanked(t *testing.T) {
	s := NewStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.insert(
		Record{ID: "a", JobID: "backend", Status: StatusPending, CreatedAt: base},
		Record{ID: "b", JobID: "backend", Status: StatusPending, CreatedAt: base},
		Record{ID: "c", JobID: "backend", Status: StatusPending, CreatedAt: base},
		Record{ID: "x", JobID: "frontend", Status: StatusPending, CreatedAt: base},
	))
	for id, score := range map[string]int{"a": 70, "b": 91, "c": 70} {
		require.NoError(t, s.update(Record{ID: id, JobID: "backend", Status: StatusProcessing, CreatedAt: base}))
		require.NoError(t, s.update(Record{ID: id, JobID: "backend", Status: StatusCompleted, FinalScore: intPtr(score), CreatedAt: base}))
	}

	assert.Equal(t, []string{"c", "b", "a"}, ids(s.ByJob("backend")))
	assert.Equal(t, []string{"b", "a", "c"}, ids(s.Ranked("backend")))
}

func TestStoreInsertIsAllOrNothing(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.insert(Record{ID: "a", Status: StatusPending}))

	err := s.insert(Record{ID: "b", Status: StatusPending}, Record{ID: "a", Status: StatusPending})
	require.Error(t, err)
	_, ok := s.Get("b")
	assert.False(t, ok, "no record of a refused batch is stored")
	assert.Len(t, s.All(), 1)

	require.Error(t, s.insert(Record{ID: "c"}, Record{ID: "c"}))
	_, ok = s.Get("c")
	assert.False(t, ok)
}
