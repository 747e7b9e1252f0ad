// Package translate turns Arabic posting text into English on a best-effort basis. A
// Translator never fails: on any error it returns its input unchanged.
package translate

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/cache"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/llm"
	"go.uber.org/zap"
)

// DefaultTimeout bounds one backend call.
const DefaultTimeout = 20 * time.Second

// Translator converts text into the target language.
type Translator interface {
	Translate(ctx context.Context, text string) string
}

// Backend performs the actual translation and may fail.
type Backend interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

// IsArabic reports whether most letters of text are in the Arabic script.
func IsArabic(text string) bool {
	var arabic, letters int
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.Is(unicode.Arabic, r) {
			arabic++
		}
	}
	return letters > 0 && arabic*2 > letters
}

// BestEffort is the Translator used by the pipeline. Without Force it only sends text
// detected as Arabic; with Force every non-empty text is sent.
type BestEffort struct {
	Backend Backend
	Cache   cache.Cache
	Target  string
	Force   bool
	Timeout time.Duration
	Logger  *zap.Logger
}

// Translate implements Translator.
func (t *BestEffort) Translate(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" || t.Backend == nil {
		return text
	}
	if !t.Force && !IsArabic(text) {
		return text
	}

	logger := t.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	target := t.Target
	if target == "" {
		target = "English"
	}

	key := cache.TranslationKey(target, text)
	if t.Cache != nil {
		if v, ok, err := t.Cache.Get(ctx, key); err == nil && ok {
			return v
		}
	}

	timeout := t.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := t.Backend.Translate(callCtx, text, target)
	if err != nil {
		logger.Debug("translation failed, keeping original", zap.String("text", text), zap.Error(err))
		return text
	}
	if out == "" {
		return text
	}

	if t.Cache != nil {
		if err := t.Cache.Set(ctx, key, out); err != nil {
			logger.Debug("failed to cache translation", zap.Error(err))
		}
	}
	return out
}

// LLMBackend translates through a generative model.
type LLMBackend struct {
	Client llm.Client
	Tier   llm.ModelTier
}

// Translate implements Backend.
func (b *LLMBackend) Translate(ctx context.Context, text, target string) (string, error) {
	tier := b.Tier
	if tier == "" {
		tier = llm.TierLite
	}
	resp, err := b.Client.GenerateContent(ctx, llm.BuildTranslationPrompt(text, target), tier)
	if err != nil {
		return "", err
	}
	return llm.CleanTranslation(resp), nil
}
