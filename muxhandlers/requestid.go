package muxhandlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/vitalvas/hostmux/mux"
)

// requestIDValueKey is the Context value key under which the request ID is
// stored for downstream callbacks.
const requestIDValueKey = "muxhandlers.request-id"

// RequestIDFromContext returns the request ID stored by RequestIDMiddleware.
// Returns an empty string if no ID is present.
func RequestIDFromContext(c *mux.Context) string {
	if id, ok := c.Get(requestIDValueKey).(string); ok {
		return id
	}

	return ""
}

// RequestIDConfig configures the Request ID middleware behaviour.
type RequestIDConfig struct {
	// HeaderName overrides the header used to propagate the request ID.
	// Defaults to "X-Request-ID" when empty.
	HeaderName string

	// GenerateFunc is an optional callback that returns a new unique ID.
	// It receives the current request, allowing ID generation based on
	// request context. Defaults to GenerateUUIDv4.
	GenerateFunc func(r *http.Request) string

	// TrustIncoming, when true, reuses an existing request ID from the
	// incoming request header instead of generating a new one.
	TrustIncoming bool
}

// RequestIDMiddleware returns a callback that generates or propagates a
// request ID header. The ID is set on the response header and stored on
// the Context for downstream callbacks.
func RequestIDMiddleware(cfg RequestIDConfig) mux.HandlerFunc {
	headerName := cfg.HeaderName
	if headerName == "" {
		headerName = "X-Request-ID"
	}

	generate := cfg.GenerateFunc
	if generate == nil {
		generate = GenerateUUIDv4
	}

	trustIncoming := cfg.TrustIncoming

	return func(c *mux.Context, next mux.Next) {
		id := ""
		if trustIncoming {
			id = c.Request().Header.Get(headerName)
		}

		if id == "" {
			id = generate(c.Request())
		}

		if id != "" {
			c.SetHeader(headerName, id)
			c.Set(requestIDValueKey, id)
		}

		next()
	}
}

// GenerateUUIDv4 returns a new UUID v4 string.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc9562#section-5.4
func GenerateUUIDv4(_ *http.Request) string {
	return uuid.New().String()
}

// GenerateUUIDv7 returns a new UUID v7 string. UUIDs are time-ordered:
// IDs generated later sort lexicographically after earlier ones.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc9562#section-5.7
func GenerateUUIDv7(_ *http.Request) string {
	return uuid.Must(uuid.NewV7()).String()
}
