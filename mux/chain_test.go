package mux

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func logHandler(log *[]string, name string, callNext bool) HandlerFunc {
	return func(_ *Context, next Next) {
		*log = append(*log, name)
		if callNext {
			next()
		}
	}
}

func TestChainRun(t *testing.T) {
	c := newContext(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	t.Run("runs callbacks in registration order", func(t *testing.T) {
		var log []string
		runChain(c, []HandlerFunc{
			logHandler(&log, "A", true),
			logHandler(&log, "B", true),
			logHandler(&log, "C", true),
			logHandler(&log, "D", false),
		})
		assert.Equal(t, []string{"A", "B", "C", "D"}, log)
	})

	t.Run("halts when a callback does not continue", func(t *testing.T) {
		var log []string
		runChain(c, []HandlerFunc{
			logHandler(&log, "A", true),
			logHandler(&log, "B", false),
			logHandler(&log, "C", true),
			logHandler(&log, "D", true),
		})
		assert.Equal(t, []string{"A", "B"}, log)
	})

	t.Run("last callback may ignore its continuation", func(t *testing.T) {
		var log []string
		runChain(c, []HandlerFunc{logHandler(&log, "only", false)})
		assert.Equal(t, []string{"only"}, log)
	})

	t.Run("empty chain is a no-op", func(t *testing.T) {
		runChain(c, nil)
	})

	t.Run("middleware regains control after downstream completes", func(t *testing.T) {
		var log []string
		runChain(c, []HandlerFunc{
			func(_ *Context, next Next) {
				log = append(log, "in")
				next()
				log = append(log, "out")
			},
			logHandler(&log, "inner", false),
		})
		assert.Equal(t, []string{"in", "inner", "out"}, log)
	})

	t.Run("calling next more than once advances a single step", func(t *testing.T) {
		var log []string
		runChain(c, []HandlerFunc{
			func(_ *Context, next Next) {
				log = append(log, "first")
				next()
				next()
			},
			logHandler(&log, "second", false),
		})
		assert.Equal(t, []string{"first", "second"}, log)
	})
}
