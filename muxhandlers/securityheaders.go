package muxhandlers

import (
	"errors"
	"fmt"

	"github.com/vitalvas/hostmux/mux"
)

// ErrInvalidFrameOption is returned when SecurityHeadersConfig.FrameOption is
// not one of the valid values: "DENY", "SAMEORIGIN", or empty string.
var ErrInvalidFrameOption = errors.New("security headers: frame option must be DENY, SAMEORIGIN, or empty")

// SecurityHeadersConfig configures the Security Headers middleware behaviour.
type SecurityHeadersConfig struct {
	// DisableContentTypeNosniff disables the X-Content-Type-Options: nosniff
	// header. The header is set by default (when false).
	DisableContentTypeNosniff bool

	// FrameOption sets the X-Frame-Options header value.
	// Valid values are "DENY", "SAMEORIGIN", or empty string to skip.
	// Defaults to "DENY".
	FrameOption string

	// ReferrerPolicy sets the Referrer-Policy header value.
	// Defaults to "strict-origin-when-cross-origin".
	ReferrerPolicy string

	// HSTSMaxAge sets the max-age directive for the Strict-Transport-Security
	// header in seconds. When zero, the header is not set.
	HSTSMaxAge int

	// HSTSIncludeSubDomains appends the includeSubDomains directive to the
	// Strict-Transport-Security header. Only effective when HSTSMaxAge > 0.
	HSTSIncludeSubDomains bool

	// ContentSecurityPolicy sets the Content-Security-Policy header.
	// When empty, the header is not set.
	ContentSecurityPolicy string
}

// SecurityHeadersMiddleware returns a callback that sets common security
// response headers before passing control to the rest of the chain.
//
// It returns ErrInvalidFrameOption if FrameOption is set to a value other
// than "DENY", "SAMEORIGIN", or empty string.
func SecurityHeadersMiddleware(cfg SecurityHeadersConfig) (mux.HandlerFunc, error) {
	if cfg.FrameOption != "" && cfg.FrameOption != "DENY" && cfg.FrameOption != "SAMEORIGIN" {
		return nil, ErrInvalidFrameOption
	}

	if cfg.FrameOption == "" {
		cfg.FrameOption = "DENY"
	}

	if cfg.ReferrerPolicy == "" {
		cfg.ReferrerPolicy = "strict-origin-when-cross-origin"
	}

	var hstsValue string
	if cfg.HSTSMaxAge > 0 {
		hstsValue = fmt.Sprintf("max-age=%d", cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubDomains {
			hstsValue += "; includeSubDomains"
		}
	}

	nosniff := !cfg.DisableContentTypeNosniff
	frameOption := cfg.FrameOption
	referrerPolicy := cfg.ReferrerPolicy
	contentSecurityPolicy := cfg.ContentSecurityPolicy

	return func(c *mux.Context, next mux.Next) {
		if nosniff {
			c.SetHeader("X-Content-Type-Options", "nosniff")
		}

		c.SetHeader("X-Frame-Options", frameOption)
		c.SetHeader("Referrer-Policy", referrerPolicy)

		if hstsValue != "" {
			c.SetHeader("Strict-Transport-Security", hstsValue)
		}

		if contentSecurityPolicy != "" {
			c.SetHeader("Content-Security-Policy", contentSecurityPolicy)
		}

		next()
	}, nil
}
