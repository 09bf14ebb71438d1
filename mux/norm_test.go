package mux

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	t.Run("collapses repeated slashes", func(t *testing.T) {
		assert.Equal(t, "/a/b", normalizePath("//a///b"))
	})

	t.Run("strips trailing slash", func(t *testing.T) {
		assert.Equal(t, "/a/b", normalizePath("/a/b/"))
	})

	t.Run("ensures leading slash", func(t *testing.T) {
		assert.Equal(t, "/a/b", normalizePath("a/b"))
	})

	t.Run("keeps root as a single slash", func(t *testing.T) {
		assert.Equal(t, "/", normalizePath(""))
		assert.Equal(t, "/", normalizePath("/"))
		assert.Equal(t, "/", normalizePath("///"))
	})
}

func TestSplitSegments(t *testing.T) {
	t.Run("splits a normalized path", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b", "c"}, splitSegments("/a/b/c"))
	})

	t.Run("root path has no segments", func(t *testing.T) {
		assert.Nil(t, splitSegments("/"))
	})
}

func TestNormalizeHost(t *testing.T) {
	t.Run("lowercases and strips port", func(t *testing.T) {
		assert.Equal(t, "api.example.com", normalizeHost("API.Example.COM:8080"))
	})

	t.Run("strips trailing dot", func(t *testing.T) {
		assert.Equal(t, "example.com", normalizeHost("example.com."))
	})

	t.Run("converts internationalized names to punycode", func(t *testing.T) {
		assert.Equal(t, "xn--bcher-kva.example", normalizeHost("bücher.example"))
	})

	t.Run("keeps ipv6 literal intact", func(t *testing.T) {
		assert.Equal(t, "[::1]", normalizeHost("[::1]:8080"))
	})
}

func TestHostLabels(t *testing.T) {
	t.Run("reverses label order", func(t *testing.T) {
		assert.Equal(t, []string{"com", "example", "api"}, hostLabels("api.example.com"))
	})

	t.Run("empty host has no labels", func(t *testing.T) {
		assert.Nil(t, hostLabels(""))
	})
}

func TestParseQuery(t *testing.T) {
	t.Run("decodes pairs into the map", func(t *testing.T) {
		got := make(map[string]string)
		parseQuery(got, "a=1&b=2")
		assert.Equal(t, map[string]string{"a": "1", "b": "2"}, got)
	})

	t.Run("percent-decodes keys and values", func(t *testing.T) {
		got := make(map[string]string)
		parseQuery(got, "na%20me=J%C3%BCrgen&plus=a%2Bb")
		assert.Equal(t, map[string]string{"na me": "Jürgen", "plus": "a+b"}, got)
	})

	t.Run("keeps a key without a value", func(t *testing.T) {
		got := make(map[string]string)
		parseQuery(got, "flag")
		assert.Equal(t, map[string]string{"flag": ""}, got)
	})

	t.Run("ignores empty pairs", func(t *testing.T) {
		got := make(map[string]string)
		parseQuery(got, "&&a=1&")
		assert.Equal(t, map[string]string{"a": "1"}, got)
	})
}
