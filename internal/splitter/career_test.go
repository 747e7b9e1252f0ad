package splitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitCareerLevel(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected CareerLevel
	}{
		{
			name:     "all three clauses",
			value:    "دوام كامل · إدارة · 5 - 10 سنوات",
			expected: CareerLevel{Type: "دوام كامل", Experience: "إدارة", SecondaryExperience: "5 - 10 سنوات"},
		},
		{
			name:     "missing field",
			value:    "",
			expected: CareerLevel{Type: "Unknown", Experience: "Unknown", SecondaryExperience: "Unknown"},
		},
		{
			name:     "type omitted shifts experience left",
			value:    "مستوى متوسط الخبرة · 2 - 5 سنوات",
			expected: CareerLevel{Type: "Unknown", Experience: "مستوى متوسط الخبرة", SecondaryExperience: "2 - 5 سنوات"},
		},
		{
			name:     "short type kept",
			value:    "Full Time · Mid Career",
			expected: CareerLevel{Type: "Full Time", Experience: "Mid Career", SecondaryExperience: "Unknown"},
		},
		{
			name:  "overlong experience moves to secondary",
			value: "عقد · خبرة لا تقل عن خمس سنوات في مجال المبيعات",
			expected: CareerLevel{
				Type:                "عقد",
				Experience:          "Unknown",
				SecondaryExperience: "خبرة لا تقل عن خمس سنوات في مجال المبيعات",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitCareerLevel(tt.value, DefaultCareerLevelOptions()))
		})
	}
}

func TestSplitCareerLevel_ZeroOptionsUseDefaults(t *testing.T) {
	got := SplitCareerLevel("دوام جزئي · مبتدئ", CareerLevelOptions{})
	assert.Equal(t, "دوام جزئي", got.Type)
	assert.Equal(t, "مبتدئ", got.Experience)
}
