package llm

import (
	"strings"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/prompts"
)

// BuildTranslationPrompt asks for a plain translation of text into the target language.
func BuildTranslationPrompt(text, target string) string {
	return prompts.MustRender("translation.yaml", "translate", map[string]string{
		"Target": target,
		"Text":   text,
	})
}

// SystemInstruction is the standing instruction sent with every translation request.
func SystemInstruction() string {
	return prompts.MustRender("translation.yaml", "system", nil)
}

// CleanTranslation strips the wrappers models put around a bare answer: code fences,
// a leading "Translation:" label and surrounding quotes.
func CleanTranslation(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	if idx := strings.Index(text, ":"); idx >= 0 && strings.EqualFold(strings.TrimSpace(text[:idx]), "translation") {
		text = strings.TrimSpace(text[idx+1:])
	}

	for _, q := range []string{`"`, `'`, "“"} {
		closing := q
		if q == "“" {
			closing = "”"
		}
		if len(text) >= len(q)+len(closing) && strings.HasPrefix(text, q) && strings.HasSuffix(text, closing) {
			text = strings.TrimSpace(text[len(q) : len(text)-len(closing)])
		}
	}
	return text
}
