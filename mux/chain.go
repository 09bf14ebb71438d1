package mux

// Next advances the middleware chain to the following callback. A callback
// that does not invoke its Next halts the chain; nothing after it runs.
// Calling Next more than once from the same callback is a no-op after the
// first call.
type Next func()

// HandlerFunc is the signature shared by middleware and route callbacks.
// It receives the per-request Context and a continuation. Terminal handlers
// typically ignore the continuation; middleware calls it to pass control
// on, and regains control once the rest of the chain has finished, so it
// can act both before and after the downstream callbacks.
type HandlerFunc func(c *Context, next Next)

// chain executes an ordered callback list. The cursor makes "did not call
// next" trivially detectable: a callback that returns without advancing it
// ends the chain. The continuation runs the remainder inside the caller's
// frame, so wrapping middleware (recovery, timing) observes downstream
// completion; nesting depth is bounded by the chain length.
type chain struct {
	callbacks []HandlerFunc
	pos       int
}

func (ch *chain) run(c *Context) {
	if ch.pos >= len(ch.callbacks) {
		return
	}

	current := ch.callbacks[ch.pos]
	ch.pos++
	mark := ch.pos

	current(c, func() {
		// A repeated next from the same callback finds the cursor already
		// moved past its mark and does nothing.
		if ch.pos == mark {
			ch.run(c)
		}
	})
}

// runChain executes domain middleware followed by route callbacks for a
// single request, in registration order.
func runChain(c *Context, callbacks []HandlerFunc) {
	ch := chain{callbacks: callbacks}
	ch.run(c)
}
