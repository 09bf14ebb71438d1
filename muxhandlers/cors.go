package muxhandlers

import (
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/vitalvas/hostmux/mux"
)

// ErrWildcardCredentials is returned when AllowedOrigins contains "*" and
// AllowCredentials is true. Use AllowOriginFunc for dynamic origin checks
// with credentials.
var ErrWildcardCredentials = errors.New("wildcard origin \"*\" cannot be used with AllowCredentials; use AllowOriginFunc instead")

// CORSConfig configures the CORS middleware behaviour.
//
// Spec references:
//   - CORS protocol: https://fetch.spec.whatwg.org/#http-cors-protocol
//   - Web Origin:    https://www.rfc-editor.org/rfc/rfc6454
type CORSConfig struct {
	// AllowedOrigins is a list of exact origin strings, "*" for wildcard,
	// or subdomain wildcard patterns like "https://*.example.com".
	AllowedOrigins []string

	// AllowOriginFunc is an optional dynamic callback invoked when the
	// origin does not match any entry in AllowedOrigins. Return true to allow.
	AllowOriginFunc func(origin string) bool

	// AllowedMethods lists the methods advertised in preflight responses.
	AllowedMethods []string

	// AllowedHeaders lists the headers the client may send in the actual
	// request. When empty the middleware reflects the
	// Access-Control-Request-Headers value from the preflight request.
	AllowedHeaders []string

	// ExposeHeaders lists the headers the browser may expose to client code.
	ExposeHeaders []string

	// AllowCredentials sets Access-Control-Allow-Credentials: true.
	// Per the Fetch Standard, "*" cannot be used as Allow-Origin when
	// credentials are enabled; the middleware returns ErrWildcardCredentials.
	AllowCredentials bool

	// MaxAge is the duration in seconds a preflight result may be cached.
	// Positive values are sent as-is, negative values emit "0", zero omits
	// the header.
	MaxAge int
}

// wildcardPattern represents a subdomain wildcard pattern split at the "*".
type wildcardPattern struct {
	prefix string
	suffix string
}

func (c *CORSConfig) hasWildcardOrigin() bool {
	return slices.Contains(c.AllowedOrigins, "*")
}

// parseOrigins normalizes AllowedOrigins to lowercase and splits them into
// exact matches and wildcard patterns. Returns an error if a pattern
// contains multiple wildcards.
func parseOrigins(origins []string) ([]string, []wildcardPattern, error) {
	var exact []string
	var patterns []wildcardPattern

	for _, o := range origins {
		if o == "*" {
			exact = append(exact, o)
			continue
		}

		lower := strings.ToLower(o)

		if strings.Contains(lower, "*") {
			parts := strings.SplitN(lower, "*", 2)
			if strings.Contains(parts[1], "*") {
				return nil, nil, errors.New("origin pattern contains multiple wildcards: " + o)
			}

			patterns = append(patterns, wildcardPattern{
				prefix: parts[0],
				suffix: parts[1],
			})
		} else {
			exact = append(exact, lower)
		}
	}

	return exact, patterns, nil
}

// matchOrigin reports whether originLower matches any exact origin or
// wildcard pattern.
func matchOrigin(originLower string, exactOrigins []string, patterns []wildcardPattern) bool {
	for _, o := range exactOrigins {
		if o == "*" || o == originLower {
			return true
		}
	}

	for _, wp := range patterns {
		if len(originLower) >= len(wp.prefix)+len(wp.suffix) &&
			strings.HasPrefix(originLower, wp.prefix) &&
			strings.HasSuffix(originLower, wp.suffix) {
			return true
		}
	}

	return false
}

// CORSMiddleware returns a pipeline callback that implements the CORS
// protocol per the Fetch Standard. Allowed origins are echoed back on the
// response; preflight OPTIONS requests are short-circuited with 204 No
// Content without invoking the rest of the chain.
//
// It returns an error if the configuration is invalid (e.g. wildcard
// origin combined with AllowCredentials).
func CORSMiddleware(cfg CORSConfig) (mux.HandlerFunc, error) {
	if cfg.hasWildcardOrigin() && cfg.AllowCredentials {
		return nil, ErrWildcardCredentials
	}

	exactOrigins, wildcardPatterns, err := parseOrigins(cfg.AllowedOrigins)
	if err != nil {
		return nil, err
	}

	isAllowed := func(originLower, rawOrigin string) bool {
		if matchOrigin(originLower, exactOrigins, wildcardPatterns) {
			return true
		}
		if cfg.AllowOriginFunc != nil {
			return cfg.AllowOriginFunc(rawOrigin)
		}
		return false
	}

	return func(c *mux.Context, next mux.Next) {
		rawOrigin := c.Request().Header.Get("Origin")
		if rawOrigin == "" {
			next()
			return
		}

		if !isAllowed(strings.ToLower(rawOrigin), rawOrigin) {
			next()
			return
		}

		if cfg.hasWildcardOrigin() && !cfg.AllowCredentials {
			c.SetHeader("Access-Control-Allow-Origin", "*")
		} else {
			c.SetHeader("Access-Control-Allow-Origin", rawOrigin)
			c.Writer().Header().Add("Vary", "Origin")
		}

		if cfg.AllowCredentials {
			c.SetHeader("Access-Control-Allow-Credentials", "true")
		}

		if c.Method() == http.MethodOptions && c.Request().Header.Get("Access-Control-Request-Method") != "" {
			if len(cfg.AllowedMethods) > 0 {
				c.SetHeader("Access-Control-Allow-Methods", strings.Join(cfg.AllowedMethods, ","))
			}

			if len(cfg.AllowedHeaders) > 0 {
				c.SetHeader("Access-Control-Allow-Headers", strings.Join(cfg.AllowedHeaders, ","))
			} else if reqHeaders := c.Request().Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
				c.SetHeader("Access-Control-Allow-Headers", reqHeaders)
			}

			if cfg.MaxAge > 0 {
				c.SetHeader("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
			} else if cfg.MaxAge < 0 {
				c.SetHeader("Access-Control-Max-Age", "0")
			}

			c.Writer().Header().Add("Vary", "Access-Control-Request-Method")
			c.Writer().Header().Add("Vary", "Access-Control-Request-Headers")

			// Preflight terminates here; the route chain never runs.
			c.Status(http.StatusNoContent)
			return
		}

		if len(cfg.ExposeHeaders) > 0 {
			c.SetHeader("Access-Control-Expose-Headers", strings.Join(cfg.ExposeHeaders, ","))
		}

		next()
	}, nil
}
