package screening

import "fmt"

// Status is the lifecycle state of a Record.
//
//	pending ──► processing ──► completed
//	   │             │
//	   └─────────────┴──► error
//
// completed and error are terminal.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

var validTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusError},
	StatusProcessing: {StatusCompleted, StatusError},
}

// ParseStatus converts a raw string to a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPending, StatusProcessing, StatusCompleted, StatusError:
		return st, nil
	}
	return "", fmt.Errorf("unknown screening status %q", s)
}

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// CanTransition reports whether a record may move from one status to another.
// Staying in the same non-terminal status is allowed so that fields can be
// filled in while processing.
func CanTransition(from, to Status) bool {
	if from == to {
		return !from.Terminal()
	}
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
