package fetch

import (
	"net/url"
	"strings"
)

// Platform is a recognised applicant tracking system
type Platform string

// Known platforms
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformAshby      Platform = "ashby"
	PlatformUnknown    Platform = "unknown"
)

type platformRule struct {
	platform Platform
	hosts    []string
	content  []string
	noise    []string
}

var platformRules = []platformRule{
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content:  []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content:  []string{".posting-page", ".posting-description", ".content"},
		noise:    []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"workday.com", "myworkdayjobs.com"},
		content:  []string{"[data-automation-id='jobDescription']", ".job-description"},
		noise:    []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	{
		platform: PlatformAshby,
		hosts:    []string{"ashbyhq.com"},
		content:  []string{"[class*='descriptionText']", "main"},
		noise:    []string{"[class*='applicationForm']"},
	},
}

// commonNoise covers application forms, EEO boilerplate and share widgets on any job board.
var commonNoise = []string{
	"form",
	".application-form",
	".apply-button-container",
	".eeo-statement",
	".eeo-section",
	".legal-disclosure",
	".self-identification",
	".social-share",
	".share-buttons",
	".cookie-banner",
	".cookie-consent",
}

// JobPostingSelectors are content selectors for unrecognised job pages
func JobPostingSelectors() []string {
	return []string{
		".job-description",
		"#job-description",
		".job-details",
		".posting-content",
		"[data-testid='job-description']",
		"main",
		"article",
		".content",
		"#content",
	}
}

// DetectPlatform identifies the job board from the URL host
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for _, rule := range platformRules {
		for _, h := range rule.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return rule.platform
			}
		}
	}
	return PlatformUnknown
}

// ContentSelectors returns the content selectors to try for a platform, most specific first.
func ContentSelectors(p Platform) []string {
	for _, rule := range platformRules {
		if rule.platform == p {
			return rule.content
		}
	}
	return JobPostingSelectors()
}

// NoiseSelectors returns the common noise selectors plus any platform-specific ones.
func NoiseSelectors(p Platform) []string {
	out := append([]string(nil), commonNoise...)
	for _, rule := range platformRules {
		if rule.platform == p {
			out = append(out, rule.noise...)
		}
	}
	return out
}
