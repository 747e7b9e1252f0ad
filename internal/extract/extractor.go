package extract

import (
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
	"github.com/dlclark/regexp2"
)

// Extractor holds the compiled keyword groups. The zero value is not usable; use New.
type Extractor struct {
	grades []GradeGroup
	male   *regexp2.Regexp
	female *regexp2.Regexp
	remote *regexp2.Regexp
	hybrid *regexp2.Regexp
}

// New returns an Extractor with the default keyword groups.
func New() *Extractor {
	return &Extractor{
		grades: DefaultGradeGroups(),
		male:   malePattern,
		female: femalePattern,
		remote: remotePattern,
		hybrid: hybridPattern,
	}
}

// WithGradeGroups returns a copy of e that uses groups, in the given order, for Grade.
func (e *Extractor) WithGradeGroups(groups []GradeGroup) *Extractor {
	c := *e
	c.grades = groups
	return &c
}

// Sources are the free-text fields the extractors scan, in application order.
type Sources struct {
	Title       string
	Description string
	Skills      string
}

// Apply runs every text extractor against rec in the fixed field order: grade from the
// title, then gender and remote mode from title, description and skills. A later field
// overwrites what an earlier one set.
func (e *Extractor) Apply(rec *types.JobRecord, src Sources) {
	rec.JobLevel, rec.JobType = e.Grade(src.Title, rec.JobLevel, rec.JobType)

	fields := []string{src.Title, src.Description, src.Skills}
	for _, text := range fields {
		rec.Gender = e.Gender(text, rec.Gender)
	}
	for _, text := range fields {
		rec.RemoteMode = e.Remote(text, rec.RemoteMode)
	}
}
