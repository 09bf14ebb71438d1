package mux

import (
	"sort"
	"strings"
)

// wildcardKey is the child key under which all parameterized segments are
// stored. A node has at most one wildcard child; the parameter name lives
// on the child node itself.
const wildcardKey = "*"

// RouteEntry is the terminal record for one method on one path: the ordered
// callback chain plus the method and path it was declared with.
type RouteEntry struct {
	// Method is the HTTP method the entry was registered for.
	Method string

	// Path is the normalized path the entry was registered with.
	Path string

	// Callbacks is the ordered chain executed after domain middleware.
	Callbacks []HandlerFunc
}

// routeNode is one path segment in a domain's route trie. Literal segments
// are stored under their own key, parameterized segments under wildcardKey
// with the stripped parameter name recorded on the node.
type routeNode struct {
	children  map[string]*routeNode
	paramName string
	methods   map[string]*RouteEntry
}

func newRouteNode() *routeNode {
	return &routeNode{children: make(map[string]*routeNode)}
}

// add registers a callback chain for method at path. Paths are normalized
// before insertion. Segments beginning with ":" become wildcard children;
// registering two different parameter names at the same depth returns
// ErrParamConflict instead of silently repointing the earlier route's name.
func (n *routeNode) add(method, path string, callbacks []HandlerFunc) error {
	if len(callbacks) == 0 {
		return ErrNoHandler
	}

	path = normalizePath(path)
	cur := n

	for _, segment := range splitSegments(path) {
		key := segment
		param := ""

		if strings.HasPrefix(segment, ":") {
			key = wildcardKey
			param = segment[1:]
		}

		child, ok := cur.children[key]
		if !ok {
			child = newRouteNode()
			cur.children[key] = child
		}

		if param != "" {
			if child.paramName != "" && child.paramName != param {
				return ErrParamConflict
			}
			child.paramName = param
		}

		cur = child
	}

	if cur.methods == nil {
		cur.methods = make(map[string]*RouteEntry)
	}
	cur.methods[strings.ToUpper(method)] = &RouteEntry{
		Method:    strings.ToUpper(method),
		Path:      path,
		Callbacks: callbacks,
	}

	return nil
}

// lookup walks the trie for the given path, preferring an exact segment
// match over the wildcard child at each level. Wildcard hops record
// parameter values into params. Returns the terminal node, or nil when any
// segment has no matching child.
func (n *routeNode) lookup(path string, params map[string]string) *routeNode {
	cur := n

	for _, segment := range splitSegments(normalizePath(path)) {
		if child, ok := cur.children[segment]; ok {
			cur = child
			continue
		}

		child, ok := cur.children[wildcardKey]
		if !ok {
			return nil
		}
		if child.paramName != "" {
			params[child.paramName] = segment
		}
		cur = child
	}

	return cur
}

// entry returns the RouteEntry for method on the terminal node, if any.
func (n *routeNode) entry(method string) (*RouteEntry, bool) {
	if n.methods == nil {
		return nil, false
	}
	e, ok := n.methods[strings.ToUpper(method)]
	return e, ok
}

// allowedMethods returns the sorted method list registered on the node,
// used to populate the Allow header on 405 responses per RFC 9110
// Section 15.5.6.
func (n *routeNode) allowedMethods() []string {
	if len(n.methods) == 0 {
		return nil
	}
	methods := make([]string, 0, len(n.methods))
	for m := range n.methods {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods
}
