package redirect

import (
	"strings"

	"catseek/lib/fetch"
)

// Jar builds the Cookie header for the next hop out of the Set-Cookie
// headers of the response just received.
//
// Two quirks are kept on purpose rather than fixed:
//   - the cookie set is recomputed from the latest hop only, there is
//     no cumulative merge across the whole chain;
//   - path/domain attributes are stripped during parsing but never
//     consulted when deciding which cookies to resend.
//
// A Jar is scoped to a single redirect chain and must not be shared
// between chains.
type Jar struct{}

func NewJar() *Jar {
	return &Jar{}
}

// Collect parses the Set-Cookie headers of h into a Cookie header
// value. It reports false when the response carried no usable
// Set-Cookie header.
func (j *Jar) Collect(h fetch.Header) (string, bool) {
	raw := h.Values("Set-Cookie")
	if len(raw) == 0 {
		return "", false
	}

	var pairs []string
	seen := map[string]bool{}
	for _, line := range raw {
		pair, ok := parseSetCookie(line)
		if !ok || seen[pair] {
			continue
		}
		seen[pair] = true
		pairs = append(pairs, pair)
	}
	if len(pairs) == 0 {
		return "", false
	}
	return strings.Join(pairs, ";"), true
}

// parseSetCookie extracts the leading name=value pair of a Set-Cookie
// line, discarding attributes like Path, Domain and Expires.
func parseSetCookie(line string) (string, bool) {
	pair, _, _ := strings.Cut(line, ";")
	pair = strings.TrimSpace(pair)
	name, _, found := strings.Cut(pair, "=")
	if !found || name == "" {
		return "", false
	}
	return pair, true
}
