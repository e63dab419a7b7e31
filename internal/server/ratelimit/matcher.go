package ratelimit

import "strings"

// MatchEndpoint returns the configuration whose pattern matches the request,
// or nil when the default limit applies. GET /health is unlimited.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Limit: 0}
	}

	for i := range configs {
		cfg := &configs[i]
		if cfg.Method == method && matchPattern(cfg.Path, path) {
			return cfg
		}
	}
	return nil
}

// matchPattern compares slash-separated segments; "*" matches exactly one
// segment and a pattern ending in "/" matches any longer path.
func matchPattern(pattern, path string) bool {
	if strings.HasSuffix(pattern, "/") && !strings.Contains(pattern, "*") {
		return strings.HasPrefix(path, pattern)
	}

	want := strings.Split(strings.Trim(pattern, "/"), "/")
	got := strings.Split(strings.Trim(path, "/"), "/")
	if len(want) != len(got) {
		return false
	}
	for i, seg := range want {
		if seg != "*" && seg != got[i] {
			return false
		}
	}
	return true
}
