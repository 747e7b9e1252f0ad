// Package splitter decomposes the composite text fields of scraped postings into
// positional sub-fields. Splitting never fails: a position beyond the available parts
// yields the configured fill value.
package splitter

import (
	"strings"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
)

// MiddleDot is the separator the source site places between clauses of a field.
const MiddleDot = "·"

// Field names one output sub-field and the position it is read from.
type Field struct {
	Index int
	Name  string
}

// Options controls how a value is split.
type Options struct {
	// Sep is the delimiter; MiddleDot when empty.
	Sep string
	// Reverse counts positions from the end of the split list.
	Reverse bool
	// Fill is returned for positions beyond the available parts; types.Unknown when empty.
	Fill string
}

func (o Options) normalized() Options {
	if o.Sep == "" {
		o.Sep = MiddleDot
	}
	if o.Fill == "" {
		o.Fill = types.Unknown
	}
	return o
}

// Part returns the trimmed sub-field at index. A missing (empty) value is treated as the
// placeholder types.Unknown before splitting, as the caller contract requires.
func Part(value string, index int, opts Options) string {
	opts = opts.normalized()
	if strings.TrimSpace(value) == "" {
		value = types.Unknown
	}
	if index < 0 {
		return opts.Fill
	}

	parts := strings.Split(value, opts.Sep)
	if index >= len(parts) {
		return opts.Fill
	}
	if opts.Reverse {
		index = len(parts) - 1 - index
	}
	return strings.TrimSpace(parts[index])
}

// Split extracts every requested field from one value.
func Split(value string, fields []Field, opts Options) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Name] = Part(value, f.Index, opts)
	}
	return out
}

// Column splits a whole column and returns one new column per requested field. Row order
// is preserved.
func Column(values []string, fields []Field, opts Options) map[string][]string {
	out := make(map[string][]string, len(fields))
	for _, f := range fields {
		col := make([]string, len(values))
		for i, v := range values {
			col[i] = Part(v, f.Index, opts)
		}
		out[f.Name] = col
	}
	return out
}
