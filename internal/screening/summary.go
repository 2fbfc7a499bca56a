package screening

import (
	"math"

	"github.com/spigell/resume-screener/internal/ats"
)

// Candidate is a short reference to a screened record.
type Candidate struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	FinalScore int    `json:"finalScore"`
}

// Summary aggregates the records of a job.
type Summary struct {
	Total        int            `json:"total"`
	ByStatus     map[Status]int `json:"byStatus"`
	Rejected     int            `json:"rejected"`
	Recommended  int            `json:"recommended"`
	AverageScore float64        `json:"averageScore"`
	Best         *Candidate     `json:"best,omitempty"`
}

// Summarize counts records per status and averages the final scores of
// completed candidates. Ties for the best score go to the earlier record.
func Summarize(records []Record) Summary {
	s := Summary{
		Total: len(records),
		ByStatus: map[Status]int{
			StatusPending:    0,
			StatusProcessing: 0,
			StatusCompleted:  0,
			StatusError:      0,
		},
	}

	var sum, scored int
	for _, rec := range records {
		s.ByStatus[rec.Status]++

		if rec.Status != StatusCompleted || rec.FinalScore == nil {
			continue
		}
		if rec.SystemScreeningResult != nil && rec.SystemScreeningResult.Outcome() == ats.OutcomeRejected {
			s.Rejected++
		}
		if rec.Recommended() {
			s.Recommended++
		}

		score := *rec.FinalScore
		sum += score
		scored++
		if s.Best == nil || score > s.Best.FinalScore {
			s.Best = &Candidate{ID: rec.ID, Name: rec.Name(), FinalScore: score}
		}
	}

	if scored > 0 {
		s.AverageScore = math.Round(float64(sum)/float64(scored)*10) / 10
	}
	return s
}
