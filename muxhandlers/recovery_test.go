package muxhandlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/hostmux/mux"
)

func TestRecoveryMiddleware(t *testing.T) {
	t.Run("recovers from a downstream panic", func(t *testing.T) {
		r := mux.NewRouter()
		d := r.Domain("example.com")
		d.Use(RecoveryMiddleware(RecoveryConfig{}))
		require.NoError(t, d.Get("/panic", func(_ *mux.Context, _ mux.Next) {
			panic("boom")
		}))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://example.com/panic", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("invokes the log callback with the recovered value", func(t *testing.T) {
		var recovered any
		r := mux.NewRouter()
		d := r.Domain("example.com")
		d.Use(RecoveryMiddleware(RecoveryConfig{
			LogFunc: func(_ *http.Request, err any) { recovered = err },
		}))
		require.NoError(t, d.Get("/panic", func(_ *mux.Context, _ mux.Next) {
			panic("observed")
		}))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://example.com/panic", nil))
		assert.Equal(t, "observed", recovered)
	})

	t.Run("does not interfere with a healthy chain", func(t *testing.T) {
		r := mux.NewRouter()
		d := r.Domain("example.com")
		d.Use(RecoveryMiddleware(RecoveryConfig{}))
		require.NoError(t, d.Get("/ok", func(c *mux.Context, _ mux.Next) {
			c.Text(http.StatusOK, "fine")
		}))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://example.com/ok", nil))
		assert.Equal(t, "fine", w.Body.String())
	})

	t.Run("keeps a response already written before the panic", func(t *testing.T) {
		r := mux.NewRouter()
		d := r.Domain("example.com")
		d.Use(RecoveryMiddleware(RecoveryConfig{}))
		require.NoError(t, d.Get("/late", func(c *mux.Context, _ mux.Next) {
			c.Text(http.StatusAccepted, "sent")
			panic("after response")
		}))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://example.com/late", nil))
		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, "sent", w.Body.String())
	})
}
