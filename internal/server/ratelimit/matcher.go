package ratelimit

import (
	"net/http"
	"strings"
)

// unlimitedPaths are GET routes that never count against a limit
var unlimitedPaths = map[string]bool{"/health": true, "/healthz": true}

// MatchEndpoint returns the configuration for path and method, or nil when
// the default limit applies. An exact path wins; otherwise the longest
// configured path ending in "/" that prefixes path is used.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if method == http.MethodGet && unlimitedPaths[path] {
		return &EndpointConfig{}
	}

	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) &&
			(best == nil || len(c.Path) > len(best.Path)) {
			best = c
		}
	}
	return best
}
