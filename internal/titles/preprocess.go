package titles

import (
	"sort"
	"strings"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	listNumbering  = mustCompile(`^\d+\.`)
	leadingArticle = mustCompile(`^a\s\b`)

	// noise strips leading seniority, gender and tier qualifiers with their trailing
	// separator, and a single trailing punctuation mark.
	noise = mustCompile(`(^((sr(\b|\s)|\ssr(\b|\s))|senior|junior|staff|female|\bmen\b|\bmale\b|women('s)|tpe (iv|iii|ii|i|v)(\s)?(-|/)?)( (senior|graduate))?|^graduate|^trainee\b( -)?)(\s)?(\.|-|/|\\)?|(\.|\-|/|\,|\\)$`)
)

func mustCompile(pattern string) *regexp2.Regexp {
	re := regexp2.MustCompile(pattern, regexp2.None)
	re.MatchTimeout = DefaultMatchTimeout
	return re
}

func replaceAll(re *regexp2.Regexp, s string) string {
	out, err := re.Replace(s, "", -1, -1)
	if err != nil {
		return s
	}
	return out
}

// Preprocess prepares a raw title for the rule pass: leading list numbering and a leading
// article are removed, the title is lowercased and trimmed, and the noise qualifiers are
// stripped.
func Preprocess(title string) string {
	// The article check anchors at the start, so numbering has to be trimmed off first.
	t := strings.TrimSpace(replaceAll(listNumbering, title))
	t = strings.TrimSpace(replaceAll(leadingArticle, t))
	t = strings.ToLower(t)
	t = replaceAll(noise, t)
	return strings.TrimSpace(t)
}

// SortDescending orders titles descending. It only affects the order in which review
// output is presented.
func SortDescending(titles []string) {
	sort.SliceStable(titles, func(i, j int) bool {
		return titles[i] > titles[j]
	})
}

var titleCaser = cases.Title(language.English)

// TitleCase formats a canonical label for presentation.
func TitleCase(label string) string {
	return titleCaser.String(label)
}
