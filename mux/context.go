package mux

import (
	"encoding/json"
	"net/http"
	"sync"
)

// Context carries the per-request state handed to every callback: the
// response writer, the request, the merged parameter map, and the lazily
// decoded body. A Context is exclusively owned by its request and never
// reused.
type Context struct {
	writer  http.ResponseWriter
	request *http.Request

	params map[string]string
	values map[string]any

	bodyOnce sync.Once
	body     *Body
	bodyErr  error

	status int
	wrote  bool
}

func newContext(w http.ResponseWriter, r *http.Request) *Context {
	return &Context{
		writer:  w,
		request: r,
		params:  make(map[string]string),
	}
}

// Request returns the underlying request.
func (c *Context) Request() *http.Request {
	return c.request
}

// Writer returns the underlying response writer. Writes through it bypass
// the Context's header guard; prefer the Context helpers.
func (c *Context) Writer() http.ResponseWriter {
	return c.writer
}

// Method returns the request method.
func (c *Context) Method() string {
	return c.request.Method
}

// Host returns the normalized request host, port stripped.
func (c *Context) Host() string {
	return normalizeHost(c.request.Host)
}

// Path returns the request path.
func (c *Context) Path() string {
	return c.request.URL.Path
}

// Param returns a named parameter captured from the path or query string.
// Path-derived parameters win over query parameters of the same name.
func (c *Context) Param(name string) string {
	return c.params[name]
}

// Params returns the full parameter map. The map is owned by the request;
// callbacks may read and write it freely.
func (c *Context) Params() map[string]string {
	return c.params
}

// Query returns a single query-string value, percent-decoded.
func (c *Context) Query(name string) string {
	pairs := make(map[string]string, 1)
	parseQuery(pairs, c.request.URL.RawQuery)
	return pairs[name]
}

// Set stores an arbitrary value on the request, visible to later callbacks
// in the same chain.
func (c *Context) Set(key string, value any) {
	if c.values == nil {
		c.values = make(map[string]any)
	}
	c.values[key] = value
}

// Get returns a value stored by an earlier callback, or nil.
func (c *Context) Get(key string) any {
	if c.values == nil {
		return nil
	}
	return c.values[key]
}

// Body reads and decodes the request payload by content type. The payload
// is read exactly once; every subsequent call, from any callback in the
// chain, returns the same decoded value or the same error.
func (c *Context) Body() (*Body, error) {
	c.bodyOnce.Do(func() {
		c.body, c.bodyErr = decodeBody(c.request)
	})
	return c.body, c.bodyErr
}

// SetHeader sets a response header. No-op once headers have been sent.
func (c *Context) SetHeader(key, value string) {
	if c.wrote {
		return
	}
	c.writer.Header().Set(key, value)
}

// Status writes the response status line. Repeated calls after headers
// have been sent are ignored, so a callback that fails after a full
// response was written cannot corrupt the reply.
func (c *Context) Status(code int) {
	if c.wrote {
		return
	}
	c.status = code
	c.wrote = true
	c.writer.WriteHeader(code)
}

// Written reports whether the response headers have been sent through the
// Context.
func (c *Context) Written() bool {
	return c.wrote
}

// StatusCode returns the status written through the Context, or zero.
func (c *Context) StatusCode() int {
	return c.status
}

// Text writes a plain-text response with the given status code.
func (c *Context) Text(code int, body string) {
	c.SetHeader("Content-Type", "text/plain; charset=utf-8")
	c.Status(code)
	c.writer.Write([]byte(body))
}

// HTML writes an HTML response with the given status code.
func (c *Context) HTML(code int, body string) {
	c.SetHeader("Content-Type", "text/html; charset=utf-8")
	c.Status(code)
	c.writer.Write([]byte(body))
}

// JSON encodes v and writes it with the given status code. If encoding
// fails before headers are sent, a 500 is written instead.
func (c *Context) JSON(code int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		if !c.wrote {
			http.Error(c.writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			c.wrote = true
		}
		return
	}

	c.SetHeader("Content-Type", "application/json")
	c.Status(code)
	c.writer.Write(data)
}

// Redirect writes a redirect response. The code must be in the 3xx range.
func (c *Context) Redirect(code int, location string) {
	if code < 300 || code > 399 {
		c.Text(http.StatusInternalServerError, "redirect status must be 3xx")
		return
	}
	c.SetHeader("Location", location)
	c.Status(code)
}
