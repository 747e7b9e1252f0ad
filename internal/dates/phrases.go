// Package dates reconstructs absolute posting dates from the relative phrases the source
// site shows ("today", "yesterday", "30+ days ago").
package dates

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/splitter"
)

// Kind classifies a parsed date phrase.
type Kind int

const (
	// KindInvalid is an unparseable or missing phrase; such rows are dropped.
	KindInvalid Kind = iota
	// KindExact is a phrase with a known day offset.
	KindExact
	// KindLowerBound is an "N+" phrase where only the minimum age is known.
	KindLowerBound
)

// Phrase is a parsed relative-time expression.
type Phrase struct {
	Kind Kind
	// Days is the exact age for KindExact and the lower bound for KindLowerBound.
	Days int
}

// exactPhrases maps fixed phrases to their age in days.
var exactPhrases = map[string]int{
	"today":        0,
	"اليوم":        0,
	"yesterday":    1,
	"أمس":          1,
	"الأمس":        1,
	"امس":          1,
	"two days ago": 2,
	"2 days ago":   2,
	"منذ يومين":    2,
	"قبل يومين":    2,
	"يومين":        2,
}

var (
	lowerBoundPattern = regexp.MustCompile(`(\d+)\s*\+`)
	daysAgoPattern    = regexp.MustCompile(`^(?:منذ|قبل)?\s*(\d+)\s*(?:days?(?:\s+ago)?|أيام|ايام|يوم|يوماً|يوما)$`)
	spaces            = regexp.MustCompile(`\s+`)
)

// ParsePhrase classifies one date text.
func ParsePhrase(text string) Phrase {
	norm := strings.ToLower(strings.TrimSpace(splitter.NormalizeDigits(text)))
	norm = spaces.ReplaceAllString(norm, " ")
	if norm == "" {
		return Phrase{Kind: KindInvalid}
	}

	if days, ok := exactPhrases[norm]; ok {
		return Phrase{Kind: KindExact, Days: days}
	}
	if m := lowerBoundPattern.FindStringSubmatch(norm); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return Phrase{Kind: KindLowerBound, Days: n}
		}
	}
	if m := daysAgoPattern.FindStringSubmatch(norm); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return Phrase{Kind: KindExact, Days: n}
		}
	}
	return Phrase{Kind: KindInvalid}
}
