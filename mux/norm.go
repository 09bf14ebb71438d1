package mux

import (
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// normalizePath returns the canonical form of a route or request path:
// a single leading slash, no repeated slashes, and no trailing slash
// (except for the root path itself).
func normalizePath(p string) string {
	if p == "" {
		return "/"
	}

	var b strings.Builder
	b.Grow(len(p) + 1)
	b.WriteByte('/')

	prevSlash := true
	for i := 0; i < len(p); i++ {
		if p[i] == '/' {
			prevSlash = true
			continue
		}
		if prevSlash && b.Len() > 1 {
			b.WriteByte('/')
		}
		b.WriteByte(p[i])
		prevSlash = false
	}

	return b.String()
}

// splitSegments splits a normalized path into its segments.
// The root path yields no segments.
func splitSegments(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// normalizeHost lowers a host name to its canonical ASCII form, stripping
// any port suffix. Internationalized names are converted to their punycode
// representation per RFC 5890 so that registration and lookup agree on a
// single spelling.
func normalizeHost(host string) string {
	if i := strings.LastIndexByte(host, ':'); i >= 0 && !strings.Contains(host[i:], "]") {
		host = host[:i]
	}
	host = strings.TrimSuffix(strings.ToLower(host), ".")

	if ascii, err := idna.Lookup.ToASCII(host); err == nil && ascii != "" {
		return ascii
	}
	return host
}

// hostLabels splits a normalized host into its labels in reverse order, so
// that "api.example.com" becomes ["com", "example", "api"]. The domain trie
// is rooted at the top-level label.
func hostLabels(host string) []string {
	if host == "" {
		return nil
	}
	labels := strings.Split(host, ".")
	for i, j := 0, len(labels)-1; i < j; i, j = i+1, j-1 {
		labels[i], labels[j] = labels[j], labels[i]
	}
	return labels
}

// parseQuery decodes key=value pairs from a raw query string into dst.
// Keys or values that fail percent-decoding are kept verbatim rather than
// dropped, so a handler still observes the pair.
func parseQuery(dst map[string]string, rawQuery string) {
	for rawQuery != "" {
		var pair string
		pair, rawQuery, _ = strings.Cut(rawQuery, "&")
		if pair == "" {
			continue
		}

		key, value, _ := strings.Cut(pair, "=")
		if k, err := url.QueryUnescape(key); err == nil {
			key = k
		}
		if v, err := url.QueryUnescape(value); err == nil {
			value = v
		}
		dst[key] = value
	}
}
