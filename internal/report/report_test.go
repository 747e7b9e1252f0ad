package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/schemas"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func records() []types.JobRecord {
	return []types.JobRecord{
		{Title: "Accountant", City: "Cairo", CompanyName: "Acme", Industry: "Accounting", PostingDate: day(2024, 3, 30), RemoteMode: types.RemoteOnSite, Gender: types.GenderMale, JobLevel: types.JobLevelJunior, JobType: types.JobTypeFullTime},
		{Title: "Accountant", City: "Giza", CompanyName: "Beta", Industry: "Accounting", PostingDate: day(2024, 4, 2), RemoteMode: types.RemoteRemote, Gender: types.GenderNoPreference, JobLevel: types.JobLevelSenior, JobType: types.JobTypeFullTime},
		{Title: "Sales Manager", City: "Cairo", CompanyName: "Acme", Industry: types.Unknown, PostingDate: day(2024, 4, 2), RemoteMode: types.RemoteOnSite, Gender: types.GenderMale, JobLevel: types.JobLevelManagement, JobType: types.JobTypeManagement},
		{Title: "Driver", City: types.Unknown, CompanyName: "Gamma", Industry: "Logistics", PostingDate: day(2024, 4, 4), RemoteMode: types.RemoteOnSite, Gender: types.GenderMale, JobLevel: types.JobLevelNoPreference, JobType: types.JobTypeUnknown},
	}
}

func TestValueCounts(t *testing.T) {
	rows := ValueCounts([]string{"b", "a", "c", "a", "b", "x"}, 0, "x")
	assert.Equal(t, []Row{
		{Label: "a", Count: 2, Percent: 40},
		{Label: "b", Count: 2, Percent: 40},
		{Label: "c", Count: 1, Percent: 20},
	}, rows)

	t.Run("top n", func(t *testing.T) {
		assert.Len(t, ValueCounts([]string{"a", "b", "c"}, 2), 2)
	})
	t.Run("percent rounds to one decimal", func(t *testing.T) {
		rows := ValueCounts([]string{"a", "b", "b"}, 0)
		assert.Equal(t, 66.7, rows[0].Percent)
		assert.Equal(t, 33.3, rows[1].Percent)
	})
	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, ValueCounts(nil, 0))
	})
}

func TestByMonth(t *testing.T) {
	rows := ByMonth(records())
	require.Len(t, rows, 2)
	assert.Equal(t, Row{Label: "April", Count: 3, Percent: 75}, rows[0])
	assert.Equal(t, "March", rows[1].Label)
}

func TestTrend(t *testing.T) {
	t.Run("daily fills gaps in order", func(t *testing.T) {
		rows := Trend(records(), Daily)
		labels := make([]string, len(rows))
		counts := make([]int, len(rows))
		for i, r := range rows {
			labels[i], counts[i] = r.Label, r.Count
		}
		assert.Equal(t, []string{"2024-03-30", "2024-03-31", "2024-04-01", "2024-04-02", "2024-04-03", "2024-04-04"}, labels)
		assert.Equal(t, []int{1, 0, 0, 2, 0, 1}, counts)
	})

	t.Run("monthly", func(t *testing.T) {
		rows := Trend(records(), Monthly)
		require.Len(t, rows, 2)
		assert.Equal(t, "2024-03", rows[0].Label)
		assert.Equal(t, 3, rows[1].Count)
	})

	t.Run("no dates", func(t *testing.T) {
		assert.Empty(t, Trend(nil, Daily))
	})
}

func TestBuild(t *testing.T) {
	rep := Build(types.MarketEgypt, records(), 0)

	assert.Equal(t, "egypt", rep.Market)
	assert.Equal(t, 4, rep.Total)
	assert.Equal(t, 3, rep.DistinctTitles)
	assert.Equal(t, 2, rep.DistinctCities)

	city := rep.Section(SectionCity)
	require.NotNil(t, city)
	assert.Equal(t, []Row{
		{Label: "Cairo", Count: 2, Percent: 66.7},
		{Label: "Giza", Count: 1, Percent: 33.3},
	}, city.Rows, "Unknown cities are excluded")

	work := rep.Section(SectionWorkType)
	require.NotNil(t, work)
	assert.Equal(t, Row{Label: "On-site", Count: 3, Percent: 75}, work.Rows[0])

	assert.Nil(t, rep.Section("missing"))
	assert.NoError(t, schemas.ValidateReport(rep))
}

func TestBuild_Empty(t *testing.T) {
	rep := Build(types.MarketSaudiArabia, nil, 5)
	assert.Equal(t, 0, rep.Total)
	assert.NoError(t, schemas.ValidateReport(rep))
}
