package screening

import (
	"fmt"
	"math"

	"github.com/spigell/resume-screener/internal/ats"
)

const (
	atsWeight = 0.6
	aiWeight  = 0.4
)

// Fuse combines the rule result with the AI score. Rejected candidates keep
// their rule score; the AI opinion cannot rescue them.
func Fuse(result ats.Result, aiScore int) int {
	switch r := result.(type) {
	case ats.Evaluated:
		return int(math.Round(atsWeight*float64(r.ATSScore) + aiWeight*float64(aiScore)))
	case ats.Rejected:
		return r.Score
	default:
		panic(fmt.Sprintf("screening: unknown ats result %T", result))
	}
}
