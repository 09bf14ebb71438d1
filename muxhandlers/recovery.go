package muxhandlers

import (
	"net/http"

	"github.com/vitalvas/hostmux/mux"
)

// RecoveryConfig configures the Recovery middleware behaviour.
type RecoveryConfig struct {
	// LogFunc is an optional callback invoked with the request and the
	// recovered value when a panic occurs. When nil, no logging is performed.
	LogFunc func(r *http.Request, err any)
}

// RecoveryMiddleware returns a callback that recovers from panics in the
// rest of the chain. The router already contains panics at the dispatch
// boundary; registering this per-domain additionally allows the panic to
// be observed through LogFunc before the 500 is written.
func RecoveryMiddleware(cfg RecoveryConfig) mux.HandlerFunc {
	return func(c *mux.Context, next mux.Next) {
		defer func() {
			if err := recover(); err != nil {
				if cfg.LogFunc != nil {
					cfg.LogFunc(c.Request(), err)
				}

				if !c.Written() {
					c.Text(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
				}
			}
		}()

		next()
	}
}
