package screening

import (
	"fmt"
	"slices"
	"sync"
)

// Store keeps screening records in memory, keyed by record ID.
//
// Records are inserted when a submission is accepted; afterwards each record is
// updated only by the collector goroutine of the batch that created it. Readers
// always receive copies.
type Store struct {
	mu      sync.RWMutex
	records map[string]Record
	order   []string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{records: make(map[string]Record)}
}

// insert adds all records or none of them.
func (s *Store) insert(recs ...Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(recs))
	for _, rec := range recs {
		if _, ok := s.records[rec.ID]; ok || seen[rec.ID] {
			return fmt.Errorf("record %s already exists", rec.ID)
		}
		seen[rec.ID] = true
	}

	for _, rec := range recs {
		s.records[rec.ID] = rec.clone()
		s.order = append(s.order, rec.ID)
	}
	return nil
}

// update replaces an existing record after checking the status transition.
func (s *Store) update(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.records[rec.ID]
	if !ok {
		return fmt.Errorf("record %s does not exist", rec.ID)
	}
	if !CanTransition(current.Status, rec.Status) {
		return fmt.Errorf("record %s: invalid transition %s -> %s", rec.ID, current.Status, rec.Status)
	}
	s.records[rec.ID] = rec.clone()
	return nil
}

// Get returns the record with the given ID.
func (s *Store) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return Record{}, false
	}
	return rec.clone(), true
}

// ByJob returns the records screened against jobID, newest submission first.
func (s *Store) ByJob(jobID string) []Record {
	return s.filter(func(r Record) bool { return r.JobID == jobID })
}

// Ranked returns the records of jobID ordered by RankByScore. Equal scores keep
// submission order.
func (s *Store) Ranked(jobID string) []Record {
	records := s.ByJob(jobID)
	slices.Reverse(records)
	RankByScore(records)
	return records
}

// All returns every record, newest first.
func (s *Store) All() []Record {
	return s.filter(func(Record) bool { return true })
}

func (s *Store) filter(keep func(Record) bool) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		rec := s.records[s.order[i]]
		if keep(rec) {
			out = append(out, rec.clone())
		}
	}
	return out
}
