package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarket(t *testing.T) {
	tests := []struct {
		input   string
		want    Market
		wantErr bool
	}{
		{"egypt", MarketEgypt, false},
		{" EG ", MarketEgypt, false},
		{"saudi-arabia", MarketSaudiArabia, false},
		{"ksa", MarketSaudiArabia, false},
		{"kuwait", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMarket(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarket_TableAndExclusions(t *testing.T) {
	assert.Equal(t, "EGYPT", MarketEgypt.Table())
	assert.Equal(t, "saudi-arabia", MarketSaudiArabia.Table())
	assert.Contains(t, MarketEgypt.ExcludedTitleTerms(), "saudi")
	assert.Empty(t, MarketSaudiArabia.ExcludedTitleTerms())
}

func TestYears_JSON(t *testing.T) {
	data, err := json.Marshal([]Years{KnownYears(3), UnknownYears()})
	require.NoError(t, err)
	assert.JSONEq(t, `[3, "Unknown"]`, string(data))

	var back []Years
	require.NoError(t, json.Unmarshal([]byte(`[0, "Unknown", "7"]`), &back))
	assert.Equal(t, []Years{KnownYears(0), UnknownYears(), KnownYears(7)}, back)
}

func TestJobLevel_RankAndImpliedType(t *testing.T) {
	assert.Equal(t, 0, JobLevelGraduate.Rank())
	assert.Equal(t, 6, JobLevelCSuite.Rank())
	assert.Equal(t, -1, JobLevelNoPreference.Rank())

	jt, ok := JobLevelGraduate.ImpliedJobType()
	assert.True(t, ok)
	assert.Equal(t, JobTypeInternship, jt)
	jt, ok = JobLevelSeniorManagement.ImpliedJobType()
	assert.True(t, ok)
	assert.Equal(t, JobTypeManagement, jt)
	_, ok = JobLevelSenior.ImpliedJobType()
	assert.False(t, ok)
}

func TestParseLabels(t *testing.T) {
	assert.Equal(t, JobTypePartTime, ParseJobType(" part time "))
	assert.Equal(t, JobTypeUnknown, ParseJobType("gig"))
	assert.Equal(t, JobLevelMidLevel, ParseJobLevel("mid level"))
	assert.Equal(t, JobLevelNoPreference, ParseJobLevel(""))
	assert.Equal(t, GenderFemale, ParseGender("female"))
	assert.Equal(t, GenderNoPreference, ParseGender("any"))
	assert.Equal(t, RemoteHybrid, ParseRemoteMode("HYBRID"))
	assert.Equal(t, RemoteOnSite, ParseRemoteMode(""))
}

func TestRawRecord_SetAndFields(t *testing.T) {
	var r RawRecord
	for i, col := range RawColumns {
		r.Set(col, col+"-value")
		require.Equal(t, col+"-value", r.Fields()[i], "column %s", col)
	}
	r.Set("not_a_column", "x")
	assert.Len(t, r.Fields(), len(RawColumns))
}
