// Package report aggregates a clean market table into the descriptive counts the
// dashboards plot: value counts per column, postings per month and a posting trend.
package report

import (
	"math"
	"sort"
	"time"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
)

// DefaultTopN limits the long-tailed sections (city, company, title, industry).
const DefaultTopN = 10

// Section names.
const (
	SectionCity       = "city"
	SectionCompany    = "company"
	SectionTitle      = "title"
	SectionWorkType   = "work_type"
	SectionGender     = "gender"
	SectionJobLevel   = "job_level"
	SectionJobType    = "job_type"
	SectionIndustry   = "industry"
	SectionMonth      = "month"
	SectionTrendMonth = "trend_month"
)

// Row is one labelled count. Percent is the share of the section total, rounded to one
// decimal.
type Row struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Section is one aggregation.
type Section struct {
	Name string `json:"name"`
	Rows []Row  `json:"rows"`
}

// Report is the full aggregation of one market table.
type Report struct {
	Market         string    `json:"market"`
	Total          int       `json:"total"`
	DistinctTitles int       `json:"distinct_titles"`
	DistinctCities int       `json:"distinct_cities"`
	Sections       []Section `json:"sections"`
}

// Section returns the named section, or nil.
func (r *Report) Section(name string) *Section {
	for i := range r.Sections {
		if r.Sections[i].Name == name {
			return &r.Sections[i]
		}
	}
	return nil
}

// Frequency is the resampling period of a trend.
type Frequency string

// Trend frequencies.
const (
	Daily   Frequency = "day"
	Monthly Frequency = "month"
)

func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

// ValueCounts counts values, skipping any listed in exclude. Rows are ordered by count
// descending, then label ascending. topN <= 0 keeps every row.
func ValueCounts(values []string, topN int, exclude ...string) []Row {
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[e] = true
	}

	counts := make(map[string]int)
	total := 0
	for _, v := range values {
		if skip[v] {
			continue
		}
		counts[v]++
		total++
	}

	rows := make([]Row, 0, len(counts))
	for label, n := range counts {
		rows = append(rows, Row{Label: label, Count: n, Percent: percent(n, total)})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Label < rows[j].Label
	})
	if topN > 0 && len(rows) > topN {
		rows = rows[:topN]
	}
	return rows
}

// ByMonth counts postings per calendar month across years, by count descending.
func ByMonth(records []types.JobRecord) []Row {
	months := make([]string, 0, len(records))
	for _, r := range records {
		if r.PostingDate.IsZero() {
			continue
		}
		months = append(months, r.PostingDate.Month().String())
	}
	return ValueCounts(months, 0)
}

// Trend counts postings per period in chronological order. Periods between the first and
// last posting with no postings are included with a zero count.
func Trend(records []types.JobRecord, freq Frequency) []Row {
	var dates []time.Time
	for _, r := range records {
		if !r.PostingDate.IsZero() {
			dates = append(dates, r.PostingDate.UTC())
		}
	}
	if len(dates) == 0 {
		return []Row{}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	layout, step, floor := "2006-01-02", func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }, dayStart
	if freq == Monthly {
		layout, step, floor = "2006-01", func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }, monthStart
	}

	counts := make(map[string]int)
	for _, d := range dates {
		counts[floor(d).Format(layout)]++
	}

	var rows []Row
	last := floor(dates[len(dates)-1])
	for t := floor(dates[0]); !t.After(last); t = step(t) {
		label := t.Format(layout)
		rows = append(rows, Row{Label: label, Count: counts[label], Percent: percent(counts[label], len(dates))})
	}
	return rows
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func monthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// Build aggregates a market table.
func Build(market types.Market, records []types.JobRecord, topN int) *Report {
	if topN <= 0 {
		topN = DefaultTopN
	}

	column := func(get func(types.JobRecord) string) []string {
		out := make([]string, len(records))
		for i, r := range records {
			out[i] = get(r)
		}
		return out
	}

	return &Report{
		Market:         market.String(),
		Total:          len(records),
		DistinctTitles: distinct(column(func(r types.JobRecord) string { return r.Title })),
		DistinctCities: distinct(column(func(r types.JobRecord) string { return r.City }), types.Unknown),
		Sections: []Section{
			{SectionCity, ValueCounts(column(func(r types.JobRecord) string { return r.City }), topN, types.Unknown)},
			{SectionCompany, ValueCounts(column(func(r types.JobRecord) string { return r.CompanyName }), 2*topN)},
			{SectionTitle, ValueCounts(column(func(r types.JobRecord) string { return r.Title }), topN)},
			{SectionWorkType, ValueCounts(column(func(r types.JobRecord) string { return string(r.RemoteMode) }), 0)},
			{SectionGender, ValueCounts(column(func(r types.JobRecord) string { return string(r.Gender) }), 0)},
			{SectionJobLevel, ValueCounts(column(func(r types.JobRecord) string { return string(r.JobLevel) }), 0)},
			{SectionJobType, ValueCounts(column(func(r types.JobRecord) string { return string(r.JobType) }), 0)},
			{SectionIndustry, ValueCounts(column(func(r types.JobRecord) string { return r.Industry }), topN)},
			{SectionMonth, ByMonth(records)},
			{SectionTrendMonth, Trend(records, Monthly)},
		},
	}
}

func distinct(values []string, exclude ...string) int {
	return len(ValueCounts(values, 0, exclude...))
}
