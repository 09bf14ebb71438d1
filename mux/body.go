package mux

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
)

// RawBodyField is the key under which an unrecognized content type's payload
// is exposed, decoded as text.
const RawBodyField = "text"

// File is a binary attachment extracted from a multipart/form-data part
// that declared a filename.
type File struct {
	// Field is the form field name from the Content-Disposition header.
	Field string

	// Filename is the client-supplied file name.
	Filename string

	// ContentType is the part's declared media type, if any.
	ContentType string

	// Data is the full part payload.
	Data []byte
}

// Body is the normalized decode result shared by every supported content
// type. Text fields map to string values; multipart attachments map to
// *File values.
type Body struct {
	// Fields holds the decoded key/value pairs.
	Fields map[string]any
}

// String returns the string value of a field, or "" when the field is
// absent or not textual.
func (b *Body) String(key string) string {
	if b == nil {
		return ""
	}
	s, _ := b.Fields[key].(string)
	return s
}

// File returns the attachment stored under key, if any.
func (b *Body) File(key string) (*File, bool) {
	if b == nil {
		return nil, false
	}
	f, ok := b.Fields[key].(*File)
	return f, ok
}

// decodeBody reads the full request payload and decodes it by content type.
// It is invoked at most once per request, through the Context's memoized
// Body accessor.
func decodeBody(r *http.Request) (*Body, error) {
	contentType := r.Header.Get("Content-Type")
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}

	switch {
	case mediaType == "application/json":
		return decodeJSONBody(r.Body)
	case mediaType == "application/x-www-form-urlencoded":
		return decodeFormBody(r.Body)
	case mediaType == "multipart/form-data":
		boundary, ok := params["boundary"]
		if !ok || boundary == "" {
			return nil, ErrMissingBoundary
		}
		return decodeMultipartBody(r.Body, boundary)
	default:
		return decodeRawBody(r.Body)
	}
}

// decodeJSONBody parses a JSON payload. Single quotes are rewritten to
// double quotes before parsing, tolerating loosely quoted input. This is a
// deliberate leniency, not strict JSON.
func decodeJSONBody(r io.Reader) (*Body, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBodyConsumed, err)
	}

	data = bytes.ReplaceAll(data, []byte{'\''}, []byte{'"'})

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode json body: %w", err)
	}

	if fields, ok := v.(map[string]any); ok {
		return &Body{Fields: fields}, nil
	}
	return &Body{Fields: map[string]any{"value": v}}, nil
}

// decodeFormBody parses an application/x-www-form-urlencoded payload into
// percent-decoded key/value pairs.
func decodeFormBody(r io.Reader) (*Body, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBodyConsumed, err)
	}

	pairs := make(map[string]string)
	parseQuery(pairs, strings.TrimSpace(string(data)))

	fields := make(map[string]any, len(pairs))
	for k, v := range pairs {
		fields[k] = v
	}
	return &Body{Fields: fields}, nil
}

// decodeMultipartBody splits a multipart/form-data payload on its boundary.
// Parts carrying a filename become *File attachments; all others are merged
// as text fields.
func decodeMultipartBody(r io.Reader, boundary string) (*Body, error) {
	mr := multipart.NewReader(r, boundary)
	fields := make(map[string]any)

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode multipart body: %w", err)
		}

		name := part.FormName()
		data, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			return nil, fmt.Errorf("decode multipart part %q: %w", name, err)
		}
		if name == "" {
			continue
		}

		if filename := part.FileName(); filename != "" {
			fields[name] = &File{
				Field:       name,
				Filename:    filename,
				ContentType: part.Header.Get("Content-Type"),
				Data:        data,
			}
		} else {
			fields[name] = string(data)
		}
	}

	return &Body{Fields: fields}, nil
}

// decodeRawBody exposes an unrecognized payload as text under RawBodyField.
func decodeRawBody(r io.Reader) (*Body, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBodyConsumed, err)
	}
	return &Body{Fields: map[string]any{RawBodyField: string(data)}}, nil
}
