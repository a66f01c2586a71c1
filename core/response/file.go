package response

import (
	"bytes"
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type fileContainer struct {
	path        string
	name        string
	contentType string
	inline      bool
}

// FileOption configures a File container.
type FileOption func(*fileContainer)

// WithFileName sets the download name and marks the file as an attachment.
func WithFileName(name string) FileOption {
	return func(f *fileContainer) {
		f.name = name
	}
}

// WithFileType overrides the content type detected from the file.
func WithFileType(contentType string) FileOption {
	return func(f *fileContainer) {
		f.contentType = contentType
	}
}

// WithInline keeps an inline disposition even when a file name is set.
func WithInline() FileOption {
	return func(f *fileContainer) {
		f.inline = true
	}
}

// File serves the file at path with range and conditional request support.
// A missing file or a directory results in 404.
func File(path string, opts ...FileOption) Container {
	f := &fileContainer{path: path}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *fileContainer) Emit(w http.ResponseWriter, req *Request, resp *Response) error {
	clean := filepath.Clean(f.path)

	info, err := os.Stat(clean)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, req.HTTP())
			return nil
		}
		return err
	}
	if info.IsDir() {
		http.NotFound(w, req.HTTP())
		return nil
	}

	resp.WriteMeta(w)

	if f.name != "" {
		w.Header().Set("Content-Disposition", contentDisposition(f.name, f.inline))
	}
	if ct := f.resolveType(); ct != "" {
		w.Header().Set("Content-Type", ct)
	}

	http.ServeFile(w, req.HTTP(), clean)
	return nil
}

func (f *fileContainer) resolveType() string {
	if f.contentType != "" {
		return f.contentType
	}
	if f.name != "" {
		return mime.TypeByExtension(filepath.Ext(f.name))
	}
	return ""
}

// Attachment serves in-memory data as a download named filename. An empty
// contentType is derived from the extension, falling back to
// application/octet-stream.
func Attachment(data []byte, filename, contentType string) Container {
	return ContainerFunc(func(w http.ResponseWriter, req *Request, resp *Response) error {
		resp.WriteMeta(w)

		if contentType == "" {
			contentType = mime.TypeByExtension(filepath.Ext(filename))
		}
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", contentDisposition(filename, false))

		http.ServeContent(w, req.HTTP(), filename, time.Time{}, bytes.NewReader(data))
		return nil
	})
}

func contentDisposition(name string, inline bool) string {
	disposition := "attachment"
	if inline {
		disposition = "inline"
	}
	if v := mime.FormatMediaType(disposition, map[string]string{"filename": name}); v != "" {
		return v
	}
	// Names FormatMediaType rejects still must not break the header.
	sanitized := strings.NewReplacer("\r", "", "\n", "", `"`, "'").Replace(name)
	return disposition + `; filename="` + sanitized + `"`
}
