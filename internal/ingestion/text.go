package ingestion

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	directionalMarks = strings.NewReplacer(
		"\u200b", "", "\u200c", "", "\u200d", "", "\u200e", "", "\u200f", "",
		"\u202a", "", "\u202b", "", "\u202c", "", "\u202d", "", "\u202e", "", "\ufeff", "",
	)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// CleanField normalizes one scraped cell: compatibility forms are folded (NFKC), bidi
// and zero-width marks are removed, and whitespace runs, including newlines, collapse
// to a single space.
func CleanField(s string) string {
	if s == "" {
		return s
	}
	s = norm.NFKC.String(s)
	s = directionalMarks.Replace(s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
