// Package observability provides formatted console output for the CLI: rule reviews,
// market reports and pipeline run summaries.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/pipeline"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/report"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/storage"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/titles"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted console output
type Printer struct {
	out io.Writer
	// MaxItems limits the titles listed per rule in reviews. Zero uses maxItemsToShow,
	// negative lists all.
	MaxItems int
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) maxItems() int {
	if p.MaxItems == 0 {
		return maxItemsToShow
	}
	return p.MaxItems
}

// truncate shortens s to width runes. Titles are often Arabic, so bytes are not counted.
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintReview lists every rule with its match count and the first matching titles. Rules
// that match nothing are flagged.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintReview(market string, reports []titles.RuleReport) {
	fmt.Fprintf(p.out, "Rule review for %s (%d rules)\n\n", market, len(reports))
	limit := p.maxItems()

	for _, r := range reports {
		marker := ""
		if r.Count == 0 {
			marker = "  [no matches]"
		}
		fmt.Fprintf(p.out, "#%-4d %s -> %s (%d)%s\n", r.Index, r.Pattern, r.Label, r.Count, marker)
		for i, t := range r.Titles {
			if limit > 0 && i >= limit {
				fmt.Fprintf(p.out, "        ... and %d more\n", len(r.Titles)-limit)
				break
			}
			fmt.Fprintf(p.out, "        %s\n", t)
		}
	}

	dead := titles.DeadRules(reports)
	fmt.Fprintf(p.out, "\n%d of %d rules matched nothing\n", len(dead), len(reports))
}

// PrintUnmatched lists titles no rule changed.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintUnmatched(unmatched []string) {
	fmt.Fprintf(p.out, "Unmatched titles: %d\n", len(unmatched))
	for _, t := range unmatched {
		fmt.Fprintf(p.out, "  - %s\n", t)
	}
}

// PrintReport outputs each report section as a table of label, count and percentage.
func (p *Printer) PrintReport(rep *report.Report) {
	if rep == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Postings:        %d\n", rep.Total))
	sb.WriteString(fmt.Sprintf("Distinct titles: %d\n", rep.DistinctTitles))
	sb.WriteString(fmt.Sprintf("Distinct cities: %d\n", rep.DistinctCities))
	p.printBox("MARKET REPORT: "+strings.ToUpper(rep.Market), sb.String())

	for _, s := range rep.Sections {
		sb.Reset()
		if len(s.Rows) == 0 {
			sb.WriteString("(no data)\n")
		}
		for _, r := range s.Rows {
			sb.WriteString(fmt.Sprintf("%-34s %7d %6.1f%%\n", truncate(r.Label, 34), r.Count, r.Percent))
		}
		p.printBox(strings.ToUpper(strings.ReplaceAll(s.Name, "_", " ")), sb.String())
	}
}

// PrintRunSummary outputs the counts of a completed pipeline run.
func (p *Printer) PrintRunSummary(res *pipeline.Result) {
	if res == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:        %s\n", res.RunID))
	sb.WriteString(fmt.Sprintf("Source:     %s\n", res.Source))
	sb.WriteString(fmt.Sprintf("Rows in:    %d\n", res.RowsIn))
	sb.WriteString(fmt.Sprintf("Excluded:   %d\n", res.Excluded))
	sb.WriteString(fmt.Sprintf("Dropped:    %d (unparseable date)\n", res.Dropped))
	sb.WriteString(fmt.Sprintf("Rows out:   %d\n", len(res.Records)))
	sb.WriteString(fmt.Sprintf("Unmatched:  %d distinct titles\n", len(res.Unmatched)))
	sb.WriteString(fmt.Sprintf("Duration:   %s\n", res.Duration.Round(time.Millisecond)))

	p.printBox("CLEANED "+strings.ToUpper(res.Market.String()), sb.String())
}

// PrintRuns lists recorded pipeline runs.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRuns(runs []storage.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(p.out, "No runs recorded.")
		return
	}
	for _, r := range runs {
		fmt.Fprintf(p.out, "%s  %-12s %-9s in=%-6d out=%-6d dropped=%-5d %s\n",
			r.ID, r.Market, r.Status, r.RowsIn, r.RowsOut, r.Dropped, r.StartedAt.Format("2006-01-02 15:04"))
	}
}
