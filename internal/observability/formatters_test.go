package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/pipeline"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/report"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/storage"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/titles"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
)

func TestPrintReview(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.MaxItems = 2

	p.PrintReview("egypt", []titles.RuleReport{
		{Index: 0, Pattern: "^account.*", Label: "Accountant", Count: 3, Titles: []string{"accountant", "accounting", "accounts"}},
		{Index: 1, Pattern: "^zzz", Label: "Nothing", Titles: []string{}},
	})
	output := buf.String()

	assert.Contains(t, output, "Rule review for egypt (2 rules)")
	assert.Contains(t, output, "^account.* -> Accountant (3)")
	assert.Contains(t, output, "accounting")
	assert.NotContains(t, output, "        accounts\n")
	assert.Contains(t, output, "... and 1 more")
	assert.Contains(t, output, "[no matches]")
	assert.Contains(t, output, "1 of 2 rules matched nothing")
}

func TestPrintUnmatched(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintUnmatched([]string{"underwater basket weaving"})
	assert.Contains(t, buf.String(), "Unmatched titles: 1")
	assert.Contains(t, buf.String(), "- underwater basket weaving")
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	rep := report.Build(types.MarketEgypt, []types.JobRecord{
		{Title: "Accountant", City: "القاهرة", RemoteMode: types.RemoteOnSite, PostingDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
	}, 5)
	p.PrintReport(rep)
	output := buf.String()

	assert.Contains(t, output, "MARKET REPORT: EGYPT")
	assert.Contains(t, output, "WORK TYPE")
	assert.Contains(t, output, "القاهرة")
	assert.Contains(t, output, "100.0%")
}

func TestPrintReport_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintReport(nil)
	assert.Empty(t, buf.String())
}

func TestPrintRunSummary(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRunSummary(&pipeline.Result{
		RunID:   uuid.New(),
		Market:  types.MarketSaudiArabia,
		Source:  "saudi.csv",
		RowsIn:  10,
		Dropped: 2,
		Records: make([]types.JobRecord, 8),
	})
	output := buf.String()

	assert.Contains(t, output, "CLEANED SAUDI-ARABIA")
	assert.Contains(t, output, "Rows in:    10")
	assert.Contains(t, output, "Rows out:   8")
}

func TestPrintRuns(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.PrintRuns(nil)
	assert.Contains(t, buf.String(), "No runs recorded.")

	buf.Reset()
	p.PrintRuns([]storage.Run{{ID: uuid.New(), Market: "egypt", Status: storage.RunStatusCompleted, RowsIn: 5, RowsOut: 4}})
	assert.Contains(t, buf.String(), "completed")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("مدير ", 40))
	output := buf.String()

	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.True(t, strings.Contains(output, "..."))
}
