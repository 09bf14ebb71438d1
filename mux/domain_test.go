package mux

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainTrie(t *testing.T) {
	t.Run("resolves an exact host", func(t *testing.T) {
		r := NewRouter()
		d := r.Domain("example.com")

		assert.Same(t, d, r.root.lookup("example.com"))
	})

	t.Run("registering the same host twice returns the same domain", func(t *testing.T) {
		r := NewRouter()
		assert.Same(t, r.Domain("example.com"), r.Domain("example.com"))
	})

	t.Run("sibling domains are isolated", func(t *testing.T) {
		r := NewRouter()
		a := r.Domain("a.example.com")
		b := r.Domain("b.example.com")

		require.NoError(t, a.Get("/only-a", noopHandler))

		params := make(map[string]string)
		assert.NotNil(t, a.routes.lookup("/only-a", params))
		assert.Nil(t, b.routes.lookup("/only-a", params))
	})

	t.Run("unregistered host resolves to nil", func(t *testing.T) {
		r := NewRouter()
		r.Domain("example.com")

		assert.Nil(t, r.root.lookup("other.com"))
		assert.Nil(t, r.root.lookup("api.example.com"))
	})

	t.Run("intermediate label is not a registered domain", func(t *testing.T) {
		r := NewRouter()
		r.Domain("api.example.com")

		assert.Nil(t, r.root.lookup("example.com"))
	})

	t.Run("wildcard matches any single unregistered label", func(t *testing.T) {
		r := NewRouter()
		wild := r.Domain("*.example.com")

		assert.Same(t, wild, r.root.lookup("anything.example.com"))
		assert.Nil(t, r.root.lookup("a.b.example.com"))
	})

	t.Run("exact label wins over wildcard", func(t *testing.T) {
		r := NewRouter()
		wild := r.Domain("*.example.com")
		api := r.Domain("api.example.com")

		assert.Same(t, api, r.root.lookup("api.example.com"))
		assert.Same(t, wild, r.root.lookup("www.example.com"))
	})
}

func TestDomainSubdomains(t *testing.T) {
	t.Run("relative name is qualified with the parent host", func(t *testing.T) {
		r := NewRouter()
		example := r.Domain("example.com")
		api := example.Domain("api")

		assert.Equal(t, "api.example.com", api.Host())
		assert.Same(t, api, r.root.lookup("api.example.com"))
	})

	t.Run("already qualified name is kept as is", func(t *testing.T) {
		r := NewRouter()
		example := r.Domain("example.com")
		api := example.Domain("api.example.com")

		assert.Equal(t, "api.example.com", api.Host())
	})

	t.Run("wildcard subdomain", func(t *testing.T) {
		r := NewRouter()
		example := r.Domain("example.com")
		wild := example.Domain("*")

		assert.Same(t, wild, r.root.lookup("whatever.example.com"))
	})
}

func TestDomainRegistration(t *testing.T) {
	t.Run("verb helpers register under their method", func(t *testing.T) {
		r := NewRouter()
		d := r.Domain("example.com")

		require.NoError(t, d.Get("/r", noopHandler))
		require.NoError(t, d.Post("/r", noopHandler))
		require.NoError(t, d.Put("/r", noopHandler))
		require.NoError(t, d.Delete("/r", noopHandler))
		require.NoError(t, d.Patch("/r", noopHandler))
		require.NoError(t, d.Options("/r", noopHandler))
		require.NoError(t, d.Head("/r", noopHandler))

		node := d.routes.lookup("/r", make(map[string]string))
		require.NotNil(t, node)
		assert.Len(t, node.methods, 7)
	})

	t.Run("registration surfaces trie errors", func(t *testing.T) {
		r := NewRouter()
		d := r.Domain("example.com")

		require.NoError(t, d.Get("/u/:id", noopHandler))
		assert.ErrorIs(t, d.Get("/u/:name", noopHandler), ErrParamConflict)
		assert.ErrorIs(t, d.Get("/x"), ErrNoHandler)
	})

	t.Run("use appends middleware in order", func(t *testing.T) {
		r := NewRouter()
		d := r.Domain("example.com")

		d.Use(noopHandler)
		d.Use(noopHandler, noopHandler)
		assert.Len(t, d.middleware, 3)
	})

	t.Run("registration flushes the route cache", func(t *testing.T) {
		r := NewRouter()
		d := r.Domain("example.com")
		require.NoError(t, d.Get("/a", noopHandler))

		r.cache.set(cacheKey{host: "example.com", path: "/b", method: http.MethodGet},
			&dispatchRecord{status: dispatchNotFound})

		require.NoError(t, d.Get("/b", noopHandler))
		assert.Equal(t, 0, r.cache.len())
	})
}
