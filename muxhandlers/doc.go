// Package muxhandlers provides pipeline middleware for the hostmux router.
// Every middleware is a mux.HandlerFunc: it receives the request Context
// and a continuation, and declines to call the continuation when it has
// produced a full response itself.
//
// # CORS Middleware
//
// CORSMiddleware implements the CORS protocol per the Fetch Standard.
// It validates the Origin header (RFC 6454), echoes allowed origins back,
// and short-circuits preflight OPTIONS requests with 204 No Content.
//
//	mw, err := muxhandlers.CORSMiddleware(muxhandlers.CORSConfig{
//	    AllowedOrigins:   []string{"https://example.com"},
//	    AllowCredentials: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	domain.Use(mw)
//
// # Recovery Middleware
//
// RecoveryMiddleware recovers from panics in the downstream chain, writes
// a 500 if nothing was sent yet, and reports the panic through LogFunc.
// The router contains panics on its own; use this middleware when panics
// should be observed per-domain.
//
// # Request ID Middleware
//
// RequestIDMiddleware generates (or propagates, with TrustIncoming) an
// X-Request-ID header and stores the ID on the Context:
//
//	domain.Use(muxhandlers.RequestIDMiddleware(muxhandlers.RequestIDConfig{}))
//
// # Logging Middleware
//
// LoggingMiddleware reports method, host, path, status, and duration for
// each request once the downstream chain finishes:
//
//	domain.Use(muxhandlers.LoggingMiddleware(muxhandlers.LoggingConfig{
//	    LogFunc: func(e muxhandlers.LogEntry) {
//	        log.Printf("%s %s%s %d %s", e.Method, e.Host, e.Path, e.Status, e.Duration)
//	    },
//	}))
//
// # Security Headers Middleware
//
// SecurityHeadersMiddleware sets common security response headers
// (X-Content-Type-Options, X-Frame-Options, Referrer-Policy, HSTS, CSP)
// before the rest of the chain runs.
package muxhandlers
