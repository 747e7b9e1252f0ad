// Package extract infers categorical attributes of a posting from free text: seniority
// grade, gender preference, remote-work mode and the experience-years range.
//
// Every extractor is last-match-wins. Groups are tried in a fixed order and a later
// matching group overwrites an earlier one, so callers control conflicts through the order
// in which they apply extractors to fields.
package extract

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// matchTimeout bounds a single pattern evaluation; a timeout counts as no match.
const matchTimeout = 250 * time.Millisecond

// keywordPattern compiles an English word-boundary alternation and an Arabic alternation
// into one case-insensitive pattern. Arabic keywords may carry the definite article and
// must not be glued to other letters.
func keywordPattern(english, arabic []string) *regexp2.Regexp {
	var parts []string
	if len(english) > 0 {
		parts = append(parts, `\b(?:`+strings.Join(english, "|")+`)\b`)
	}
	if len(arabic) > 0 {
		parts = append(parts, `(?<!\p{L})(?:ال)?(?:`+strings.Join(arabic, "|")+`)(?!\p{L})`)
	}
	re := regexp2.MustCompile(strings.Join(parts, "|"), regexp2.IgnoreCase)
	re.MatchTimeout = matchTimeout
	return re
}

func matches(re *regexp2.Regexp, text string) bool {
	if text == "" {
		return false
	}
	ok, err := re.MatchString(text)
	return err == nil && ok
}
