package s3

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrymomot/respkit/core/response"
)

type object struct {
	client   Client
	bucket   string
	key      string
	download string
}

// ObjectOption configures an object container.
type ObjectOption func(*object)

// WithDownloadName serves the object as an attachment named name.
func WithDownloadName(name string) ObjectOption {
	return func(o *object) {
		o.download = name
	}
}

// Object returns a container that streams bucket/key to the client.
// Range and conditional request headers are forwarded to S3. Missing
// objects and buckets result in 404, denied access in 403.
func Object(client Client, bucket, key string, opts ...ObjectOption) response.Container {
	o := &object{client: client, bucket: bucket, key: key}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *object) Emit(w http.ResponseWriter, req *response.Request, resp *response.Response) error {
	key, err := cleanKey(o.key)
	if err != nil {
		http.NotFound(w, req.HTTP())
		return nil
	}

	input := &s3aws.GetObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(key),
	}
	if v, ok := req.Header("Range"); ok {
		input.Range = aws.String(v)
	}
	if v, ok := req.Header("If-None-Match"); ok {
		input.IfNoneMatch = aws.String(v)
	}
	if v, ok := req.Header("If-Modified-Since"); ok {
		if t, err := http.ParseTime(v); err == nil {
			input.IfModifiedSince = aws.Time(t)
		}
	}

	out, err := o.client.GetObject(req.Context(), input)
	if err != nil {
		return o.fail(w, req, resp, classifyError(err, "get object"))
	}
	defer func() { _ = out.Body.Close() }()

	resp.WriteMeta(w)
	h := w.Header()
	h.Set("Content-Type", contentType(out, key))
	h.Set("Accept-Ranges", "bytes")
	if out.ContentLength != nil {
		h.Set("Content-Length", strconv.FormatInt(*out.ContentLength, 10))
	}
	if out.ETag != nil {
		h.Set("ETag", *out.ETag)
	}
	if out.LastModified != nil {
		h.Set("Last-Modified", out.LastModified.UTC().Format(http.TimeFormat))
	}
	if out.CacheControl != nil {
		h.Set("Cache-Control", *out.CacheControl)
	}
	if o.download != "" {
		h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": o.download}))
	}

	status := resp.Status()
	if out.ContentRange != nil {
		h.Set("Content-Range", *out.ContentRange)
		status = http.StatusPartialContent
	}
	w.WriteHeader(status)

	if _, err := io.Copy(w, out.Body); err != nil {
		return fmt.Errorf("stream object %s: %w", key, err)
	}
	return nil
}

func (o *object) fail(w http.ResponseWriter, req *response.Request, resp *response.Response, err error) error {
	switch {
	case errors.Is(err, ErrNotModified):
		resp.WriteMeta(w)
		w.WriteHeader(http.StatusNotModified)
		return nil
	case errors.Is(err, ErrObjectNotFound), errors.Is(err, ErrBucketNotFound):
		http.NotFound(w, req.HTTP())
		return nil
	case errors.Is(err, ErrAccessDenied):
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return nil
	}
	return err
}

func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return key, nil
}

func contentType(out *s3aws.GetObjectOutput, key string) string {
	if out.ContentType != nil && *out.ContentType != "" {
		return *out.ContentType
	}
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
