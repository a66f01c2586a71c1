package response

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// CharsetFilter returns a filter that transcodes the UTF-8 body to charset.
// Characters the target charset can't represent are replaced. Pair it with
// SetCharset so the Content-Type matches the bytes on the wire.
func CharsetFilter(charset string) (Filter, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCharset, charset)
	}
	if name, _ := htmlindex.Name(enc); name == "utf-8" {
		return func(body string) string { return body }, nil
	}
	return func(body string) string {
		out, err := encoding.ReplaceUnsupported(enc.NewEncoder()).String(body)
		if err != nil {
			return body
		}
		return out
	}, nil
}

// ReplaceFilter returns a filter that performs the old/new string
// replacements of strings.NewReplacer. It panics on an odd argument count.
func ReplaceFilter(oldnew ...string) Filter {
	replacer := strings.NewReplacer(oldnew...)
	return replacer.Replace
}
