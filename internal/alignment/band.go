package alignment

import (
	"fmt"

	"github.com/jonathan/resume-aligner/internal/types"
)

// Default band thresholds
const (
	DefaultStrongThreshold = 0.75
	DefaultMediumThreshold = 0.55
	DefaultWeakThreshold   = 0.35
)

// Thresholds is the ordered ladder used to band a score. Weak is also the
// gap cutoff: any skill scoring strictly below it is reported as a gap.
type Thresholds struct {
	Strong float64 `json:"strong" yaml:"strong"`
	Medium float64 `json:"medium" yaml:"medium"`
	Weak   float64 `json:"weak" yaml:"weak"`
}

// DefaultThresholds returns the 0.75 / 0.55 / 0.35 ladder
func DefaultThresholds() Thresholds {
	return Thresholds{
		Strong: DefaultStrongThreshold,
		Medium: DefaultMediumThreshold,
		Weak:   DefaultWeakThreshold,
	}
}

// Validate checks 0 <= weak <= medium <= strong <= 1
func (t Thresholds) Validate() error {
	if t.Weak < 0 || t.Strong > 1 {
		return fmt.Errorf("band thresholds must lie in [0, 1], got strong=%.2f medium=%.2f weak=%.2f", t.Strong, t.Medium, t.Weak)
	}
	if t.Weak > t.Medium || t.Medium > t.Strong {
		return fmt.Errorf("band thresholds must satisfy weak <= medium <= strong, got strong=%.2f medium=%.2f weak=%.2f", t.Strong, t.Medium, t.Weak)
	}
	return nil
}

// Classify maps a score to a band, highest threshold first
func (t Thresholds) Classify(score float64) types.Band {
	switch {
	case score >= t.Strong:
		return types.BandStrong
	case score >= t.Medium:
		return types.BandMedium
	case score >= t.Weak:
		return types.BandWeak
	default:
		return types.BandMissing
	}
}

// Classify bands a score with the default thresholds
func Classify(score float64) types.Band {
	return DefaultThresholds().Classify(score)
}
