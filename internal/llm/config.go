// Package llm wraps the Gemini API for structured extraction of job description terms.
package llm

// ModelTier selects a model by capability
type ModelTier string

const (
	// TierLite covers extraction and classification
	TierLite ModelTier = "lite"
	// TierStandard covers structured output over longer inputs
	TierStandard ModelTier = "standard"
)

// DefaultTemperature keeps extraction output stable across calls
const DefaultTemperature float32 = 0.1

// Config maps tiers to model names
type Config struct {
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the Gemini model ladder
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		Temperature: DefaultTemperature,
	}
}

// Model returns the model for tier, falling back to standard then lite.
// It returns "" when nothing is configured.
func (c *Config) Model(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if model, ok := c.Models[t]; ok && model != "" {
			return model
		}
	}
	return ""
}

// WithModel returns a copy of c with tier pointed at model
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	next := &Config{
		Models:      make(map[ModelTier]string, len(c.Models)+1),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		next.Models[k] = v
	}
	next.Models[tier] = model
	return next
}
