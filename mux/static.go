package mux

import (
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
)

// serveStatic attempts to satisfy an unrouted request from a domain's
// static file system. It reports whether a file was served, so the caller
// can fall through to not-found handling on a miss. Read failures are
// treated as a miss rather than surfaced, per the fallback contract.
func serveStatic(c *Context, fsys fs.FS, reqPath string) bool {
	if fsys == nil {
		return false
	}

	name := strings.TrimPrefix(path.Clean("/"+reqPath), "/")
	if name == "" {
		name = "index.html"
	}

	f, err := fsys.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return false
	}

	if stat.IsDir() {
		index, err := fsys.Open(path.Join(name, "index.html"))
		if err != nil {
			return false
		}
		defer index.Close()
		f, name = index, path.Join(name, "index.html")
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return false
	}

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	c.SetHeader("Content-Type", contentType)
	c.Status(http.StatusOK)
	c.writer.Write(data)
	return true
}
