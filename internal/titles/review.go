package titles

import "sort"

// RuleReport lists the titles one rule matches.
type RuleReport struct {
	Index   int      `json:"index"`
	Pattern string   `json:"pattern"`
	Label   string   `json:"label"`
	Count   int      `json:"count"`
	Titles  []string `json:"titles"`
}

// Review reports, for every rule in table order, the titles it matches. Titles are
// tested as given and never rewritten, so each rule is judged against the same input.
func (e *Engine) Review(titles []string) []RuleReport {
	reports := make([]RuleReport, 0, len(e.rules))
	for _, r := range e.rules {
		rep := RuleReport{Index: r.index, Pattern: r.Pattern, Label: r.Label, Titles: []string{}}
		for _, t := range titles {
			if e.matches(r, t) {
				rep.Titles = append(rep.Titles, t)
			}
		}
		rep.Count = len(rep.Titles)
		reports = append(reports, rep)
	}
	return reports
}

// DeadRules returns the indexes of rules that matched nothing in reports.
func DeadRules(reports []RuleReport) []int {
	var dead []int
	for _, r := range reports {
		if r.Count == 0 {
			dead = append(dead, r.Index)
		}
	}
	return dead
}

// Unmatched returns the distinct titles the rule pass left unchanged, given the titles
// before and after the pass in the same order. The result is sorted.
func Unmatched(before, after []string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range before {
		if i >= len(after) || before[i] != after[i] || seen[before[i]] {
			continue
		}
		seen[before[i]] = true
		out = append(out, before[i])
	}
	sort.Strings(out)
	return out
}
