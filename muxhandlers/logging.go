package muxhandlers

import (
	"net/http"
	"time"

	"github.com/vitalvas/hostmux/mux"
)

// LogEntry holds the fields captured for one completed request.
type LogEntry struct {
	Method   string
	Host     string
	Path     string
	Status   int
	Duration time.Duration
}

// LoggingConfig configures the access-log middleware behaviour.
type LoggingConfig struct {
	// LogFunc is invoked once per request after the rest of the chain has
	// finished. Required.
	LogFunc func(entry LogEntry)
}

// LoggingMiddleware returns a callback that records method, host, path,
// status, and duration for every request passing through it. A chain that
// halts downstream without writing a response is logged with status zero.
func LoggingMiddleware(cfg LoggingConfig) mux.HandlerFunc {
	return func(c *mux.Context, next mux.Next) {
		start := time.Now()

		next()

		status := c.StatusCode()
		if status == 0 && c.Written() {
			status = http.StatusOK
		}

		cfg.LogFunc(LogEntry{
			Method:   c.Method(),
			Host:     c.Host(),
			Path:     c.Path(),
			Status:   status,
			Duration: time.Since(start),
		})
	}
}
