package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://job-boards.greenhouse.io/doordashusa/jobs/7063751", PlatformGreenhouse},
		{"https://boards.greenhouse.io/company/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/company/job-id", PlatformLever},
		{"https://acme.wd5.myworkdayjobs.com/en-US/careers/job/123", PlatformWorkday},
		{"https://jobs.ashbyhq.com/acme/123", PlatformAshby},
		{"https://example.com/careers/backend", PlatformUnknown},
		{"https://notgreenhouse.io.example.com/job", PlatformUnknown},
		{"://bad", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestContentSelectors(t *testing.T) {
	assert.Equal(t, ".job__description.body", ContentSelectors(PlatformGreenhouse)[0])
	assert.Equal(t, JobPostingSelectors(), ContentSelectors(PlatformUnknown))
}

func TestNoiseSelectors(t *testing.T) {
	common := NoiseSelectors(PlatformUnknown)
	lever := NoiseSelectors(PlatformLever)

	assert.Contains(t, common, "form")
	assert.Greater(t, len(lever), len(common))
	assert.Contains(t, lever, ".posting-apply")
	// must not alias the shared slice
	assert.NotContains(t, NoiseSelectors(PlatformUnknown), ".posting-apply")
}
