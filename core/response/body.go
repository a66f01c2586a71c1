package response

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

type bodyKind uint8

const (
	bodyRaw bodyKind = iota
	bodyContainer
)

// Body is the response payload: either a raw value rendered to text on
// send, or a Container that transmits itself.
type Body struct {
	kind      bodyKind
	raw       any
	container Container
}

// RawBody wraps a value that is rendered to text on send.
func RawBody(v any) Body {
	return Body{kind: bodyRaw, raw: v}
}

// ContainerBody wraps a self-transmitting container.
func ContainerBody(c Container) Body {
	return Body{kind: bodyContainer, container: c}
}

// Container returns the container variant, if that is what the body holds.
func (b Body) Container() (Container, bool) {
	if b.kind != bodyContainer || b.container == nil {
		return nil, false
	}
	return b.container, true
}

// Raw returns the raw variant. It is nil for container bodies.
func (b Body) Raw() any {
	if b.kind != bodyRaw {
		return nil
	}
	return b.raw
}

// render writes the textual form of a raw body to w.
func (b Body) render(ctx context.Context, w io.Writer) error {
	var err error
	switch v := b.raw.(type) {
	case nil:
		return nil
	case string:
		_, err = io.WriteString(w, v)
	case []byte:
		_, err = w.Write(v)
	case templ.Component:
		err = v.Render(ctx, w)
	case io.Reader:
		_, err = io.Copy(w, v)
	case fmt.Stringer:
		_, err = io.WriteString(w, v.String())
	case error:
		_, err = io.WriteString(w, v.Error())
	default:
		_, err = fmt.Fprint(w, v)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRenderBody, err)
	}
	return nil
}
