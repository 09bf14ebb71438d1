package mux

import (
	"io/fs"
	"net/http"
	"strings"
)

// Domain is the registration surface and routing state for one registered
// host. It owns a route trie, an ordered middleware list, an optional
// static file system, and an optional not-found handler. Domains are built
// during the configuration phase and are read-only while serving.
type Domain struct {
	host       string
	router     *Router
	routes     *routeNode
	middleware []HandlerFunc
	staticFS   fs.FS
	notFound   HandlerFunc
}

// domainNode is one label of a reversed host name in the domain trie.
// A node carries a Domain only when a registration terminates on it;
// intermediate labels (e.g. "com") are bare.
type domainNode struct {
	children map[string]*domainNode
	domain   *Domain
}

func newDomainNode() *domainNode {
	return &domainNode{children: make(map[string]*domainNode)}
}

// insert walks or creates nodes for the reversed labels of host and returns
// the Domain terminating there, creating it on first registration.
func (n *domainNode) insert(host string, router *Router) *Domain {
	cur := n
	for _, label := range hostLabels(host) {
		child, ok := cur.children[label]
		if !ok {
			child = newDomainNode()
			cur.children[label] = child
		}
		cur = child
	}

	if cur.domain == nil {
		cur.domain = &Domain{
			host:   host,
			router: router,
			routes: newRouteNode(),
		}
	}
	return cur.domain
}

// lookup resolves a request host to its registered Domain. At each label it
// prefers an exact match and falls back to a "*" wildcard child. Returns
// nil when no registered domain terminates on the final node.
func (n *domainNode) lookup(host string) *Domain {
	cur := n
	for _, label := range hostLabels(host) {
		if child, ok := cur.children[label]; ok {
			cur = child
			continue
		}
		child, ok := cur.children[wildcardKey]
		if !ok {
			return nil
		}
		cur = child
	}
	return cur.domain
}

// Host returns the normalized host the domain was registered with.
func (d *Domain) Host() string {
	return d.host
}

// Use appends middleware to the domain. Middleware runs before the matched
// route's callbacks, in the order it was registered.
func (d *Domain) Use(mw ...HandlerFunc) {
	d.middleware = append(d.middleware, mw...)
}

// Static sets the file system used for static fallback when no route
// matches a request on this domain.
func (d *Domain) Static(fsys fs.FS) {
	d.staticFS = fsys
}

// NotFound sets the handler invoked when neither a route nor a static file
// matches a request on this domain. It overrides the router-wide handler.
func (d *Domain) NotFound(h HandlerFunc) {
	d.notFound = h
}

// Domain registers a subdomain. A relative name is qualified with the
// parent host, so example.Domain("api") and example.Domain("api.example.com")
// are equivalent. The "*" name registers a wildcard matching any single
// unregistered label under the parent.
func (d *Domain) Domain(name string) *Domain {
	name = strings.TrimSuffix(strings.ToLower(name), ".")
	if d.host != "" && !strings.HasSuffix(name, "."+d.host) && name != d.host {
		name = name + "." + d.host
	}
	return d.router.Domain(name)
}

// Handle registers a callback chain for an arbitrary method and path.
// Registration flushes the route cache, so routes added after serving has
// begun become reachable instead of shadowed by cached negative lookups.
func (d *Domain) Handle(method, path string, callbacks ...HandlerFunc) error {
	if err := d.routes.add(method, path, callbacks); err != nil {
		return err
	}
	d.router.cache.purge()
	return nil
}

// Get registers a callback chain for GET requests at path.
func (d *Domain) Get(path string, callbacks ...HandlerFunc) error {
	return d.Handle(http.MethodGet, path, callbacks...)
}

// Post registers a callback chain for POST requests at path.
func (d *Domain) Post(path string, callbacks ...HandlerFunc) error {
	return d.Handle(http.MethodPost, path, callbacks...)
}

// Put registers a callback chain for PUT requests at path.
func (d *Domain) Put(path string, callbacks ...HandlerFunc) error {
	return d.Handle(http.MethodPut, path, callbacks...)
}

// Delete registers a callback chain for DELETE requests at path.
func (d *Domain) Delete(path string, callbacks ...HandlerFunc) error {
	return d.Handle(http.MethodDelete, path, callbacks...)
}

// Patch registers a callback chain for PATCH requests at path.
func (d *Domain) Patch(path string, callbacks ...HandlerFunc) error {
	return d.Handle(http.MethodPatch, path, callbacks...)
}

// Options registers a callback chain for OPTIONS requests at path.
func (d *Domain) Options(path string, callbacks ...HandlerFunc) error {
	return d.Handle(http.MethodOptions, path, callbacks...)
}

// Head registers a callback chain for HEAD requests at path.
func (d *Domain) Head(path string, callbacks ...HandlerFunc) error {
	return d.Handle(http.MethodHead, path, callbacks...)
}
