package session

import (
	"fmt"
	"net/url"

	"github.com/gobwas/glob"
)

// HostGuard restricts which hosts sessions may be established against using
// glob patterns ("*.internal", "dav.*"). An empty pattern list allows every
// host. The guard is consulted before credentials are ever used, so a
// blocked host is a local validation failure like an empty password.
type HostGuard struct {
	patterns []glob.Glob
	raw      []string
}

// NewHostGuard compiles the allowed-host patterns.
func NewHostGuard(patterns []string) (*HostGuard, error) {
	guard := &HostGuard{}

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid host pattern '%s': %w", pattern, err)
		}
		guard.patterns = append(guard.patterns, g)
		guard.raw = append(guard.raw, pattern)
	}

	return guard, nil
}

// Allows reports whether the URL's host may be authorized against. URLs
// that do not parse are never allowed.
func (g *HostGuard) Allows(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return g.AllowsHost(u.Hostname())
}

// AllowsHost reports whether a bare hostname may be authorized against.
// Patterns match the whole hostname, without the port.
func (g *HostGuard) AllowsHost(host string) bool {
	if host == "" {
		return false
	}

	// No patterns configured means no restriction
	if len(g.patterns) == 0 {
		return true
	}

	for _, pattern := range g.patterns {
		if pattern.Match(host) {
			return true
		}
	}

	return false
}

// Patterns returns the configured patterns.
func (g *HostGuard) Patterns() []string {
	raw := make([]string, len(g.raw))
	copy(raw, g.raw)
	return raw
}
