package response

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// acceptsGzip reports whether an Accept-Encoding value allows gzip.
func acceptsGzip(header string) bool {
	for part := range strings.SplitSeq(header, ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		coding = strings.ToLower(strings.TrimSpace(coding))
		if coding != "gzip" && coding != "x-gzip" && coding != "*" {
			continue
		}
		if qualityZero(params) {
			continue
		}
		return true
	}
	return false
}

func qualityZero(params string) bool {
	for p := range strings.SplitSeq(params, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok || strings.TrimSpace(k) != "q" {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return err == nil && q == 0
	}
	return false
}

// gzipTo writes the compressed body into dst.
func gzipTo(dst *bytes.Buffer, body string, level int) error {
	zw, err := gzip.NewWriterLevel(dst, level)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCompress, err)
	}
	if _, err := zw.Write([]byte(body)); err != nil {
		_ = zw.Close()
		return fmt.Errorf("%w: %w", ErrCompress, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrCompress, err)
	}
	return nil
}
