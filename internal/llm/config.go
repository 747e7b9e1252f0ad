// Package llm wraps the generative-language backend used to translate posting text.
package llm

// ModelTier represents the capability level of a model.
type ModelTier string

const (
	// TierLite is for short, high-volume calls such as single-title translation.
	TierLite ModelTier = "lite"
	// TierStandard is for longer passages such as descriptions.
	TierStandard ModelTier = "standard"
)

// Config holds the Gemini models used per tier. Translations are deterministic, so the
// temperature defaults to 0, and titles are short, so output is capped.
type Config struct {
	Models          map[ModelTier]string
	Temperature     float32
	MaxOutputTokens int32
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		Temperature:     0,
		MaxOutputTokens: 256,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Models:          make(map[ModelTier]string, len(c.Models)+1),
		Temperature:     c.Temperature,
		MaxOutputTokens: c.MaxOutputTokens,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
