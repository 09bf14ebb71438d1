package mux

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bodyRequest(contentType, payload string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	req.Header.Set("Content-Type", contentType)
	return req
}

func TestDecodeBodyJSON(t *testing.T) {
	t.Run("decodes a json object into fields", func(t *testing.T) {
		body, err := decodeBody(bodyRequest("application/json", `{"key":"value"}`))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"key": "value"}, body.Fields)
	})

	t.Run("tolerates single-quoted input", func(t *testing.T) {
		body, err := decodeBody(bodyRequest("application/json", `{'key': 'value'}`))
		require.NoError(t, err)
		assert.Equal(t, "value", body.String("key"))
	})

	t.Run("wraps a non-object value", func(t *testing.T) {
		body, err := decodeBody(bodyRequest("application/json", `[1, 2]`))
		require.NoError(t, err)
		assert.Equal(t, []any{float64(1), float64(2)}, body.Fields["value"])
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		_, err := decodeBody(bodyRequest("application/json", `{"key":`))
		assert.Error(t, err)
	})

	t.Run("honors media type parameters", func(t *testing.T) {
		body, err := decodeBody(bodyRequest("application/json; charset=utf-8", `{"a":"b"}`))
		require.NoError(t, err)
		assert.Equal(t, "b", body.String("a"))
	})
}

func TestDecodeBodyForm(t *testing.T) {
	t.Run("decodes urlencoded pairs", func(t *testing.T) {
		body, err := decodeBody(bodyRequest("application/x-www-form-urlencoded", "a=1&b=2"))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": "1", "b": "2"}, body.Fields)
	})

	t.Run("percent-decodes values", func(t *testing.T) {
		body, err := decodeBody(bodyRequest("application/x-www-form-urlencoded", "name=J%C3%BCrgen"))
		require.NoError(t, err)
		assert.Equal(t, "Jürgen", body.String("name"))
	})
}

func TestDecodeBodyMultipart(t *testing.T) {
	newMultipart := func(t *testing.T) (string, *bytes.Buffer) {
		t.Helper()
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)

		require.NoError(t, w.WriteField("name", "alice"))

		fw, err := w.CreateFormFile("avatar", "avatar.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte{0x89, 0x50, 0x4e, 0x47})
		require.NoError(t, err)

		require.NoError(t, w.Close())
		return w.FormDataContentType(), &buf
	}

	t.Run("merges text fields and attachments into one map", func(t *testing.T) {
		contentType, buf := newMultipart(t)
		req := httptest.NewRequest(http.MethodPost, "/", buf)
		req.Header.Set("Content-Type", contentType)

		body, err := decodeBody(req)
		require.NoError(t, err)

		assert.Equal(t, "alice", body.String("name"))

		file, ok := body.File("avatar")
		require.True(t, ok)
		assert.Equal(t, "avatar.png", file.Filename)
		assert.Equal(t, "avatar", file.Field)
		assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, file.Data)
	})

	t.Run("missing boundary is a hard failure", func(t *testing.T) {
		_, err := decodeBody(bodyRequest("multipart/form-data", "ignored"))
		assert.ErrorIs(t, err, ErrMissingBoundary)
	})

	t.Run("truncated body surfaces a decode error", func(t *testing.T) {
		_, err := decodeBody(bodyRequest("multipart/form-data; boundary=xyz", "--xyz\r\nbroken"))
		assert.Error(t, err)
	})
}

func TestDecodeBodyRaw(t *testing.T) {
	t.Run("unknown content type is exposed as text", func(t *testing.T) {
		body, err := decodeBody(bodyRequest("application/octet-stream", "raw payload"))
		require.NoError(t, err)
		assert.Equal(t, "raw payload", body.String(RawBodyField))
	})

	t.Run("missing content type is exposed as text", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("plain"))
		body, err := decodeBody(req)
		require.NoError(t, err)
		assert.Equal(t, "plain", body.String(RawBodyField))
	})
}

func TestBodyAccessors(t *testing.T) {
	t.Run("string returns empty for non-text fields", func(t *testing.T) {
		b := &Body{Fields: map[string]any{"file": &File{Field: "file"}}}
		assert.Equal(t, "", b.String("file"))
		assert.Equal(t, "", b.String("absent"))
	})

	t.Run("nil body is safe", func(t *testing.T) {
		var b *Body
		assert.Equal(t, "", b.String("any"))
		_, ok := b.File("any")
		assert.False(t, ok)
	})
}
