package mux

import (
	"fmt"
	"io/fs"
	"net/http"
	"strings"
)

// Router resolves each request first to a domain, then to a route within
// that domain, and drives the matched callback chain. It implements
// http.Handler, so the host transport is the standard library server:
//
//	r := mux.NewRouter()
//	api := r.Domain("api.example.com")
//	api.Get("/user/:id", userHandler)
//	http.ListenAndServe(":8080", r)
//
// Routes are expected to be registered during a configuration phase before
// serving begins. Registering a route while serving flushes the route
// cache so stale negative entries are never replayed.
type Router struct {
	// NotFoundHandler runs when no route, static file, or domain-level
	// not-found handler matches. If nil, a bare 404 is written.
	// Corresponds to 404 Not Found per RFC 9110 Section 15.5.5.
	NotFoundHandler HandlerFunc

	// MethodNotAllowedHandler runs when the path matched but no chain is
	// registered for the request method. If nil, a default 405 handler is
	// used. The Allow header is always set before this handler is
	// invoked, per RFC 9110 Section 15.5.6.
	MethodNotAllowedHandler HandlerFunc

	root     *domainNode
	fallback *Domain
	cache    *routeCache
}

// NewRouter returns a router with the default route cache capacity.
func NewRouter() *Router {
	r := &Router{
		root:  newDomainNode(),
		cache: newRouteCache(DefaultCacheCapacity),
	}
	r.fallback = &Domain{router: r, routes: newRouteNode()}
	return r
}

// CacheCapacity replaces the route cache with one holding up to n resolved
// dispatch records. Existing records are discarded. Values below one fall
// back to DefaultCacheCapacity.
func (r *Router) CacheCapacity(n int) {
	r.cache = newRouteCache(n)
}

// Domain returns the registration surface for host, creating it on first
// use. The host is normalized (lowercased, port stripped, IDN converted to
// ASCII form); a "*" label registers a wildcard matching any single
// unregistered label at that position.
func (r *Router) Domain(host string) *Domain {
	d := r.root.insert(normalizeHost(host), r)
	r.cache.purge()
	return d
}

// Use appends router-wide middleware, run before any domain middleware on
// every matched route.
func (r *Router) Use(mw ...HandlerFunc) {
	r.fallback.middleware = append(r.fallback.middleware, mw...)
}

// Handle registers a host-independent route, matched when the request host
// does not resolve to any registered domain.
func (r *Router) Handle(method, path string, callbacks ...HandlerFunc) error {
	if err := r.fallback.routes.add(method, path, callbacks); err != nil {
		return err
	}
	r.cache.purge()
	return nil
}

// Get registers a host-independent GET route.
func (r *Router) Get(path string, callbacks ...HandlerFunc) error {
	return r.Handle(http.MethodGet, path, callbacks...)
}

// Post registers a host-independent POST route.
func (r *Router) Post(path string, callbacks ...HandlerFunc) error {
	return r.Handle(http.MethodPost, path, callbacks...)
}

// Put registers a host-independent PUT route.
func (r *Router) Put(path string, callbacks ...HandlerFunc) error {
	return r.Handle(http.MethodPut, path, callbacks...)
}

// Delete registers a host-independent DELETE route.
func (r *Router) Delete(path string, callbacks ...HandlerFunc) error {
	return r.Handle(http.MethodDelete, path, callbacks...)
}

// Head registers a host-independent HEAD route.
func (r *Router) Head(path string, callbacks ...HandlerFunc) error {
	return r.Handle(http.MethodHead, path, callbacks...)
}

// Patch registers a host-independent PATCH route.
func (r *Router) Patch(path string, callbacks ...HandlerFunc) error {
	return r.Handle(http.MethodPatch, path, callbacks...)
}

// Options registers a host-independent OPTIONS route.
func (r *Router) Options(path string, callbacks ...HandlerFunc) error {
	return r.Handle(http.MethodOptions, path, callbacks...)
}

// Static sets the static fallback file system used when the request host
// does not resolve to any registered domain.
func (r *Router) Static(fsys fs.FS) {
	r.fallback.staticFS = fsys
}

// ServeHTTP dispatches the request: route cache, then domain trie, then
// route trie, then the middleware pipeline, then static or not-found
// fallback. Panics in callbacks are contained to the request and converted
// to a 500 response carrying the panic message.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	c := newContext(w, req)

	defer func() {
		if rec := recover(); rec != nil {
			// A callback that fails after sending a full response is
			// tolerated as long as nothing more is written.
			if !c.Written() {
				c.Text(http.StatusInternalServerError, fmt.Sprint(rec))
			}
		}
	}()

	host := normalizeHost(req.Host)
	path := normalizePath(req.URL.Path)

	key := cacheKey{host: host, path: path, method: strings.ToUpper(req.Method)}
	record, ok := r.cache.get(key)
	if !ok {
		record = r.resolve(host, path, key.method)
		r.cache.set(key, record)
	}

	r.dispatch(c, record)
}

// Lookup resolves a request triple without dispatching it. It returns the
// matched entry and the path parameters it would capture, or one of
// ErrDomainNotFound, ErrRouteNotFound, ErrMethodNotAllowed. The route
// cache is not consulted or populated.
func (r *Router) Lookup(host, path, method string) (*RouteEntry, map[string]string, error) {
	host = normalizeHost(host)
	path = normalizePath(path)

	domain := r.root.lookup(host)
	noDomain := domain == nil
	if noDomain {
		domain = r.fallback
	}

	params := make(map[string]string)
	node := domain.routes.lookup(path, params)

	switch {
	case node == nil || len(node.methods) == 0:
		if noDomain {
			return nil, nil, ErrDomainNotFound
		}
		return nil, nil, ErrRouteNotFound
	default:
		entry, ok := node.entry(strings.ToUpper(method))
		if !ok {
			return nil, nil, ErrMethodNotAllowed
		}
		return entry, params, nil
	}
}

// resolve walks the domain trie and the matched domain's route trie for a
// request triple, producing the dispatch record that the cache memoizes.
// Lookup cost is linear in the number of host labels plus path segments,
// independent of how many domains or routes are registered.
func (r *Router) resolve(host, path, method string) *dispatchRecord {
	domain := r.root.lookup(host)
	if domain == nil {
		domain = r.fallback
	}

	params := make(map[string]string)
	node := domain.routes.lookup(path, params)

	switch {
	case node == nil || len(node.methods) == 0:
		return &dispatchRecord{status: dispatchNotFound, domain: domain}
	default:
		entry, ok := node.entry(method)
		if !ok {
			return &dispatchRecord{
				status: dispatchNoMethod,
				domain: domain,
				allow:  node.allowedMethods(),
			}
		}
		return &dispatchRecord{
			status: dispatchFound,
			entry:  entry,
			domain: domain,
			params: params,
		}
	}
}

// dispatch merges parameters and runs the resolved outcome: the middleware
// pipeline on a match, the 405 path on a method mismatch, and the
// static-then-not-found fallback chain otherwise.
func (r *Router) dispatch(c *Context, record *dispatchRecord) {
	// Query pairs first, path captures second: a path parameter wins over
	// a query key of the same name.
	parseQuery(c.params, c.request.URL.RawQuery)
	for k, v := range record.params {
		c.params[k] = v
	}

	switch record.status {
	case dispatchFound:
		callbacks := make([]HandlerFunc, 0,
			len(r.fallback.middleware)+len(record.domain.middleware)+len(record.entry.Callbacks))
		callbacks = append(callbacks, r.fallback.middleware...)
		if record.domain != r.fallback {
			callbacks = append(callbacks, record.domain.middleware...)
		}
		callbacks = append(callbacks, record.entry.Callbacks...)
		runChain(c, callbacks)

	case dispatchNoMethod:
		c.SetHeader("Allow", strings.Join(record.allow, ", "))
		if r.MethodNotAllowedHandler != nil {
			runChain(c, []HandlerFunc{r.MethodNotAllowedHandler})
			return
		}
		c.Text(http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))

	default:
		r.notFound(c, record.domain)
	}
}

// notFound runs the fallback chain for an unmatched request: the domain's
// static file system, then its not-found handler, then the router-wide
// handler, then a bare 404.
func (r *Router) notFound(c *Context, domain *Domain) {
	if serveStatic(c, domain.staticFS, c.request.URL.Path) {
		return
	}

	handler := domain.notFound
	if handler == nil {
		handler = r.NotFoundHandler
	}
	if handler != nil {
		runChain(c, []HandlerFunc{handler})
		return
	}

	c.Text(http.StatusNotFound, http.StatusText(http.StatusNotFound))
}
