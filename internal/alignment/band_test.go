package alignment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-aligner/internal/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		score    float64
		expected types.Band
	}{
		{1.0, types.BandStrong},
		{0.75, types.BandStrong},
		{0.7499, types.BandMedium},
		{0.55, types.BandMedium},
		{0.5499, types.BandWeak},
		{0.35, types.BandWeak},
		{0.3499, types.BandMissing},
		{0.0, types.BandMissing},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Classify(tt.score), "score %v", tt.score)
	}
}

func TestClassify_Monotonic(t *testing.T) {
	prev := Classify(0)
	for s := 0.0; s <= 1.0; s += 0.01 {
		b := Classify(s)
		assert.GreaterOrEqual(t, b.Rank(), prev.Rank(), "band dropped at %v", s)
		prev = b
	}
}

func TestThresholds_Validate(t *testing.T) {
	assert.NoError(t, DefaultThresholds().Validate())
	assert.NoError(t, Thresholds{Strong: 0.5, Medium: 0.5, Weak: 0.5}.Validate())

	assert.Error(t, Thresholds{Strong: 0.5, Medium: 0.6, Weak: 0.1}.Validate())
	assert.Error(t, Thresholds{Strong: 0.8, Medium: 0.2, Weak: 0.3}.Validate())
	assert.Error(t, Thresholds{Strong: 1.2, Medium: 0.5, Weak: 0.3}.Validate())
	assert.Error(t, Thresholds{Strong: 0.8, Medium: 0.5, Weak: -0.1}.Validate())
}

func TestThresholds_CustomLadder(t *testing.T) {
	th := Thresholds{Strong: 0.9, Medium: 0.6, Weak: 0.3}
	assert.Equal(t, types.BandMedium, th.Classify(0.8))
	assert.Equal(t, types.BandWeak, th.Classify(0.3))
	assert.Equal(t, types.BandMissing, th.Classify(0.29))
}
