package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/ingestion"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/report"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
)

func writeRawFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "egypt-2024-05-01.csv")
	records := []types.RawRecord{
		{
			Title:          "Senior Graphic Designer",
			CompanyName:    "Acme",
			Location:       "المعادي · القاهرة · مصر",
			CareerLevel:    "دوام كامل · مبتدئ · 2-5 سنوات",
			Industry:       "50-100 موظف · محاسبة",
			NumOfVacancies: "عدد الوظائف الشاغرة 3",
			Date:           "اليوم",
		},
		{
			Title:       "مطلوب محاسب للعمل في السعودية",
			CompanyName: "Beta",
			Date:        "اليوم",
		},
		{
			Title:       "2. Female Accountant",
			CompanyName: "Delta",
			CareerLevel: "تدريب",
			Date:        "15+ days ago",
		},
	}
	require.NoError(t, ingestion.WriteRawCSV(path, records))
	return path
}

func TestCommands_FlagsValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{
			name:        "clean without --market",
			args:        []string{"clean", "--input", "raw.csv"},
			errorString: "required",
		},
		{
			name:        "clean without --input",
			args:        []string{"clean", "--market", "egypt"},
			errorString: "required",
		},
		{
			name:        "clean with unknown market",
			args:        []string{"clean", "--market", "mars", "--input", "raw.csv"},
			errorString: "mars",
		},
		{
			name:        "review-rules without --market",
			args:        []string{"review-rules"},
			errorString: "required",
		},
		{
			name:        "normalize-titles without titles",
			args:        []string{"normalize-titles", "--market", "egypt"},
			errorString: "no titles given",
		},
		{
			name:        "report with unknown market",
			args:        []string{"report", "kuwait"},
			errorString: "kuwait",
		},
		{
			name:        "invalid log level",
			args:        []string{"runs", "--log-level", "loud"},
			errorString: "config error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestValidateRulesCommand(t *testing.T) {
	t.Run("embedded tables", func(t *testing.T) {
		out, err := execute(t, "", "validate-rules")
		require.NoError(t, err)
		assert.Contains(t, out, "OK   embedded:egypt")
		assert.Contains(t, out, "OK   embedded:saudi-arabia")
	})

	t.Run("pattern that does not compile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		yaml := "market: egypt\nrules:\n  - pattern: 'account'\n    label: Accountant\n  - pattern: '(unclosed'\n    label: Broken\n"
		require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

		out, err := execute(t, "", "validate-rules", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 1 rule tables invalid")
		assert.Contains(t, out, "FAIL "+path)
		assert.Contains(t, out, "rule 1")
	})
}

func TestNormalizeTitlesCommand(t *testing.T) {
	out, err := execute(t, "", "normalize-titles", "--market", "egypt", "Senior Graphic Designer")
	require.NoError(t, err)
	assert.Contains(t, out, "Senior Graphic Designer => Graphic Design")
}

func TestCleanReportAndRuns(t *testing.T) {
	input := writeRawFixture(t)
	dbPath := filepath.Join(t.TempDir(), "database.db")
	cleanOut := filepath.Join(t.TempDir(), "clean.csv")

	out, err := execute(t, dbPath, "clean",
		"--market", "egypt",
		"--input", input,
		"--reference-date", "2024-05-01",
		"--num-days", "5",
		"--validate",
		"--out", cleanOut)
	require.NoError(t, err)
	assert.Contains(t, out, "Rows out:   2")

	data, err := os.ReadFile(cleanOut)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Graphic Design")
	assert.Contains(t, string(data), "Accountant")

	t.Run("report reads the stored table", func(t *testing.T) {
		out, err := execute(t, dbPath, "report", "egypt", "--json")
		require.NoError(t, err)

		var reports []report.Report
		require.NoError(t, json.Unmarshal([]byte(out), &reports))
		require.Len(t, reports, 1)
		assert.Equal(t, "egypt", reports[0].Market)
		assert.Equal(t, 2, reports[0].Total)
		require.NotNil(t, reports[0].Section(report.SectionTitle))
	})

	t.Run("runs lists the completed run", func(t *testing.T) {
		out, err := execute(t, dbPath, "runs")
		require.NoError(t, err)
		assert.Contains(t, out, "completed")
	})

	t.Run("review-rules reads titles from the store", func(t *testing.T) {
		out, err := execute(t, dbPath, "review-rules", "--market", "egypt", "--json")
		require.NoError(t, err)

		var reviews []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &reviews))
		assert.NotEmpty(t, reviews)
	})
}

func TestCleanNoPersist(t *testing.T) {
	input := writeRawFixture(t)
	dbPath := filepath.Join(t.TempDir(), "database.db")

	_, err := execute(t, dbPath, "clean", "--market", "egypt", "--input", input, "--no-persist", "--reference-date", "2024-05-01")
	require.NoError(t, err)

	_, err = execute(t, dbPath, "report", "egypt")
	require.Error(t, err, "nothing was stored")
}
