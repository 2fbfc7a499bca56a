package screening

import (
	"cmp"
	"encoding/json"
	"slices"
)

// RecommendedScore is the lowest final score of a recommended candidate.
const RecommendedScore = 90

// Recommended reports whether the record completed with a final score of at
// least RecommendedScore.
func (r Record) Recommended() bool {
	return r.Status == StatusCompleted && r.FinalScore != nil && *r.FinalScore >= RecommendedScore
}

// MarshalJSON adds the derived recommended flag to the record fields.
func (r Record) MarshalJSON() ([]byte, error) {
	type fields Record
	return json.Marshal(struct {
		fields
		Recommended bool `json:"recommended"`
	}{fields(r), r.Recommended()})
}

// RankByScore sorts records by final score, highest first. Records without a
// final score go last. Ties go to the earlier CreatedAt, then keep their order.
func RankByScore(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int {
		switch {
		case a.FinalScore == nil && b.FinalScore == nil:
		case a.FinalScore == nil:
			return 1
		case b.FinalScore == nil:
			return -1
		default:
			if c := cmp.Compare(*b.FinalScore, *a.FinalScore); c != 0 {
				return c
			}
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}
