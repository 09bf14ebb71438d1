package mux

import (
	"container/list"
	"sync"
)

// DefaultCacheCapacity is the route cache size used when the Router is not
// configured with an explicit capacity.
const DefaultCacheCapacity = 500

// matchStatus is the tri-state outcome of resolving a request triple.
type matchStatus int

const (
	// dispatchNotFound means no route trie path matched the request path.
	dispatchNotFound matchStatus = iota
	// dispatchNoMethod means the path matched but no chain is registered
	// for the request method.
	dispatchNoMethod
	// dispatchFound means a full method-specific chain was resolved.
	dispatchFound
)

// cacheKey identifies one resolved dispatch: the normalized request host,
// the request path without its query string, and the HTTP method.
type cacheKey struct {
	host   string
	path   string
	method string
}

// dispatchRecord is the memoized result of a trie resolution. Negative
// outcomes are cached alongside positive ones so repeated failed lookups
// are bounded equally.
type dispatchRecord struct {
	status matchStatus
	entry  *RouteEntry
	domain *Domain

	// params holds the path-derived parameters captured during the trie
	// walk. Query parameters are per-request and merged at dispatch time.
	params map[string]string

	// allow carries the Allow header values for method-mismatch records.
	allow []string
}

// routeCache is a mutex-guarded LRU over dispatch records. Both Get and Set
// refresh recency; eviction removes exactly the least-recently-touched
// entry when capacity would be exceeded. Go serves requests on multiple
// goroutines, so unlike a single-threaded event loop the map and recency
// list need explicit mutual exclusion.
type routeCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[cacheKey]*list.Element
}

type cacheItem struct {
	key    cacheKey
	record *dispatchRecord
}

func newRouteCache(capacity int) *routeCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &routeCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[cacheKey]*list.Element, capacity),
	}
}

// get returns the cached record for key, refreshing its recency.
func (c *routeCache) get(key cacheKey) (*dispatchRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheItem).record, true
}

// set stores the record for key, evicting the least-recently-used entry if
// the cache is at capacity. Re-setting an existing key replaces its record
// and refreshes recency; two requests racing to populate the same key is
// last-writer-wins.
func (c *routeCache) set(key cacheKey, record *dispatchRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheItem).record = record
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*cacheItem).key)
		}
	}

	c.entries[key] = c.order.PushFront(&cacheItem{key: key, record: record})
}

// purge drops every cached record. Called when routes are registered after
// serving has begun, so stale negative entries are never served for newly
// reachable paths.
func (c *routeCache) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	clear(c.entries)
}

// len reports the number of cached records.
func (c *routeCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
