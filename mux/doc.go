// Package mux implements a host-aware request router and dispatch engine.
// An incoming request is resolved first to a domain, then to a route within
// that domain, and the matched callback chain is driven through an ordered
// middleware pipeline.
//
// The package implements routing semantics based on:
//   - RFC 9110 (HTTP Semantics)
//   - RFC 3986 (URIs)
//   - RFC 5890 (Internationalized Domain Names)
//
// # Router
//
// Create a router, register domains and routes, and serve:
//
//	r := mux.NewRouter()
//
//	api := r.Domain("api.example.com")
//	api.Get("/user/:id", func(c *mux.Context, _ mux.Next) {
//	    c.JSON(http.StatusOK, map[string]string{"id": c.Param("id")})
//	})
//
//	http.ListenAndServe(":8080", r)
//
// # Domains
//
// Domains isolate routing per tenant. Hosts are matched by their labels in
// reverse order, so registrations for example.com and api.example.com share
// nothing but the trie path down to "example". A "*" label matches any
// single unregistered label:
//
//	example := r.Domain("example.com")
//	example.Domain("api")      // api.example.com
//	example.Domain("*")        // any other subdomain of example.com
//
// Each domain carries its own middleware, static file system, and
// not-found handler:
//
//	example.Use(authMiddleware)
//	example.Static(os.DirFS("./public"))
//	example.NotFound(custom404)
//
// # Routes and Parameters
//
// Path segments beginning with ":" capture the matched segment under the
// given name. An exact segment always wins over a parameter at the same
// depth. Registering two different parameter names at the same depth
// returns ErrParamConflict:
//
//	api.Get("/user/:id", handler)         // /user/42    -> id=42
//	api.Get("/user/self", selfHandler)    // exact match wins
//
// Query-string pairs are merged into the same parameter map before the
// chain runs; a path parameter wins over a query key of the same name.
//
// # Middleware Pipeline
//
// Every callback receives the Context and a continuation. Calling next
// advances the chain; returning without calling it halts the chain:
//
//	api.Use(func(c *mux.Context, next mux.Next) {
//	    if c.Request().Header.Get("Authorization") == "" {
//	        c.Text(http.StatusUnauthorized, "missing credentials")
//	        return // nothing after this runs
//	    }
//	    next()
//	})
//
// Callbacks execute strictly in registration order: router-wide middleware,
// then domain middleware, then the matched route's callbacks. A panic in
// any callback is contained to the request and converted to a 500 response
// carrying the panic message.
//
// # Route Cache
//
// Resolved (host, path, method) triples are memoized in an LRU cache
// (default capacity 500, configurable via Router.CacheCapacity), including
// negative results so repeated failed lookups are bounded equally.
// Registering a route flushes the cache.
//
// # Request Body
//
// Context.Body reads and decodes the payload at most once per request,
// branching on Content-Type: application/json (with a leniency pass that
// rewrites single quotes), application/x-www-form-urlencoded, and
// multipart/form-data (parts with a filename become *File attachments).
// Any other content type is exposed as text under RawBodyField:
//
//	body, err := c.Body()
//	if err != nil {
//	    c.Text(http.StatusBadRequest, err.Error())
//	    return
//	}
//	name := body.String("name")
//
// # Error Responses
//
// A path that matches but lacks a handler for the request method receives
// 405 with an Allow header listing the registered methods. An unmatched
// request falls through the domain's static file system, then the domain's
// not-found handler, then the router's NotFoundHandler, then a bare 404.
package mux
