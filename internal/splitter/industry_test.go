package splitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitIndustry(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected Industry
	}{
		{"size then industry", "50-100 موظف · تكنولوجيا المعلومات", Industry{Industry: "تكنولوجيا المعلومات", CompanySize: "50-100 موظف"}},
		{"industry then size is swapped", "تكنولوجيا المعلومات · 50-100 موظف", Industry{Industry: "تكنولوجيا المعلومات", CompanySize: "50-100 موظف"}},
		{"only size", "11-50 موظف", Industry{Industry: "Unknown", CompanySize: "11-50 موظف"}},
		{"only industry", "البناء", Industry{Industry: "البناء", CompanySize: "Unknown"}},
		{"english size", "Banking · 1000+ employees", Industry{Industry: "Banking", CompanySize: "1000+ employees"}},
		{"missing", "", Industry{Industry: "Unknown", CompanySize: "Unknown"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitIndustry(tt.value))
		})
	}
}

func TestVacancies(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected int
	}{
		{"count at index 3", "عدد الوظائف الشاغرة 3", 3},
		{"arabic digits", "عدد الوظائف الشاغرة ٤", 4},
		{"trailing colon stripped", "Number of vacancies: 12:", 12},
		{"missing", "", 1},
		{"short", "وظيفة واحدة", 1},
		{"zero becomes default", "a b c 0", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Vacancies(tt.value))
		})
	}
}
