package dates

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

// Defaults used by the pipeline.
const (
	DefaultNumDays = 120
	DefaultSeed    = 42
)

// Reconstructor converts relative date phrases into absolute dates relative to a fixed
// as-of date.
type Reconstructor struct {
	// ReferenceDate is the as-of date every age is subtracted from.
	ReferenceDate time.Time
	// NumDays is the window the "N+" postings are spread over.
	NumDays int
	// Seed makes the synthesized spread reproducible.
	Seed uint64
	// Jitter bounds the per-day perturbation.
	Jitter int
	Logger *zap.Logger
}

// Result holds the reconstructed dates. Kept and Dates are parallel: Dates[i] belongs to
// input row Kept[i]. Dropped lists input rows whose phrase could not be parsed.
type Result struct {
	Kept         []int
	Dates        []time.Time
	Dropped      []int
	Distribution []int
}

// Reconstruct assigns a date to every parseable phrase. Exact phrases map directly to
// their age. "N+" rows are ordered by N (stable), then receive the expanded synthetic
// offsets in that order, so a row's age is N plus its offset.
func (r *Reconstructor) Reconstruct(texts []string) Result {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	numDays := r.NumDays
	if numDays < 1 {
		numDays = DefaultNumDays
	}
	ref := truncateDay(r.ReferenceDate)

	ages := make(map[int]int, len(texts))
	var lowerBound []int
	bounds := make(map[int]int)
	var res Result

	for i, text := range texts {
		p := ParsePhrase(text)
		switch p.Kind {
		case KindExact:
			ages[i] = p.Days
		case KindLowerBound:
			lowerBound = append(lowerBound, i)
			bounds[i] = p.Days
		default:
			res.Dropped = append(res.Dropped, i)
		}
	}

	sort.SliceStable(lowerBound, func(a, b int) bool {
		return bounds[lowerBound[a]] < bounds[lowerBound[b]]
	})

	res.Distribution = Distribution(len(lowerBound), numDays, r.Seed, r.Jitter)
	offsets := Expand(res.Distribution)
	for k, row := range lowerBound {
		ages[row] = bounds[row] + offsets[k]
	}

	for i := range texts {
		age, ok := ages[i]
		if !ok {
			continue
		}
		res.Kept = append(res.Kept, i)
		res.Dates = append(res.Dates, ref.AddDate(0, 0, -age))
	}

	logger.Info("reconstructed posting dates",
		zap.Int("rows", len(texts)),
		zap.Int("lower_bound_rows", len(lowerBound)),
		zap.Int("dropped", len(res.Dropped)),
		zap.Int("num_days", numDays),
	)
	return res
}

func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
