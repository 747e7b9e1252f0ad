package splitter

import (
	"unicode/utf8"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
)

// Default rune-length limits above which a career-level clause is considered misaligned.
const (
	DefaultTypeMaxRunes       = 12
	DefaultExperienceMaxRunes = 30
)

// CareerLevel is the decomposition of the career_level field:
// "<type> · <career level> · <years of experience>".
type CareerLevel struct {
	Type                string
	Experience          string
	SecondaryExperience string
}

// CareerLevelOptions holds the repair thresholds.
type CareerLevelOptions struct {
	TypeMaxRunes       int
	ExperienceMaxRunes int
}

// DefaultCareerLevelOptions returns the thresholds used by the pipeline.
func DefaultCareerLevelOptions() CareerLevelOptions {
	return CareerLevelOptions{
		TypeMaxRunes:       DefaultTypeMaxRunes,
		ExperienceMaxRunes: DefaultExperienceMaxRunes,
	}
}

// SplitCareerLevel extracts the three clauses and repairs misalignment. Employers may omit
// optional clauses, which shifts the rest to the left. A type longer than TypeMaxRunes is
// really experience text, so every clause moves one slot to the right and the type becomes
// Unknown. The same check is then applied between experience and secondary experience.
func SplitCareerLevel(value string, opts CareerLevelOptions) CareerLevel {
	if opts.TypeMaxRunes <= 0 {
		opts.TypeMaxRunes = DefaultTypeMaxRunes
	}
	if opts.ExperienceMaxRunes <= 0 {
		opts.ExperienceMaxRunes = DefaultExperienceMaxRunes
	}

	parts := Split(value, []Field{
		{Index: 0, Name: "type"},
		{Index: 1, Name: "exp"},
		{Index: 2, Name: "no_exp"},
	}, Options{Sep: MiddleDot})

	cl := CareerLevel{
		Type:                parts["type"],
		Experience:          parts["exp"],
		SecondaryExperience: parts["no_exp"],
	}

	if utf8.RuneCountInString(cl.Type) > opts.TypeMaxRunes {
		cl.SecondaryExperience = cl.Experience
		cl.Experience = cl.Type
		cl.Type = types.Unknown
	}
	if utf8.RuneCountInString(cl.Experience) > opts.ExperienceMaxRunes {
		cl.SecondaryExperience = cl.Experience
		cl.Experience = types.Unknown
	}
	return cl
}
