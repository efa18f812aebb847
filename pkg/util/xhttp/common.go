package xhttp

import (
	"fmt"
	stdurl "net/url"
	"strings"
)

// ParseURL parses a full URL or a bare "host[:port][/path]" address. A bare
// address is assumed to use defaultScheme.
func ParseURL(addr, defaultScheme string) (*stdurl.URL, error) {
	if !strings.Contains(addr, "://") {
		addr = defaultScheme + "://" + addr
	}
	u, err := stdurl.Parse(addr)
	if err != nil {
		return nil, err
	}
	if u.Host == "" {
		return nil, fmt.Errorf("missing host in %q", addr)
	}
	return u, nil
}
