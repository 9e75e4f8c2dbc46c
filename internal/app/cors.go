package app

import (
	"net/url"
	"strings"
)

// originAllowed reports whether a request origin matches any configured
// pattern. Patterns apply to the host[:port] part of the origin and may use a
// "*." subdomain prefix or a ":*" port suffix.
func originAllowed(patterns []string, origin string) bool {
	host := origin
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		host = u.Host
	}
	for _, pattern := range patterns {
		if matchOrigin(pattern, host) {
			return true
		}
	}
	return false
}

func matchOrigin(pattern, host string) bool {
	switch {
	case pattern == host:
		return true
	case strings.HasPrefix(pattern, "*."):
		return strings.HasSuffix(host, pattern[1:])
	case strings.HasSuffix(pattern, ":*"):
		return strings.HasPrefix(host, pattern[:len(pattern)-1])
	}
	return false
}
