package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildTranslationPrompt(t *testing.T) {
	prompt := BuildTranslationPrompt("محاسب", "English")
	assert.Contains(t, prompt, "into English")
	assert.Contains(t, prompt, "محاسب")
}

func TestCleanTranslation(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "Accountant", "Accountant"},
		{"whitespace", "  Accountant\n", "Accountant"},
		{"double quotes", `"Sales Manager"`, "Sales Manager"},
		{"smart quotes", "“Sales Manager”", "Sales Manager"},
		{"label", "Translation: Accountant", "Accountant"},
		{"code fence", "```\nAccountant\n```", "Accountant"},
		{"code fence with language", "```text\nAccountant\n```", "Accountant"},
		{"colon kept when not a label", "HR: Recruiter", "HR: Recruiter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanTranslation(tt.input))
		})
	}
}
