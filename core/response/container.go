package response

import "net/http"

// Container is a body that transmits itself. Send hands it the writer and
// does nothing else, so implementations call resp.WriteMeta before writing
// to keep the accumulated headers and cookies.
type Container interface {
	Emit(w http.ResponseWriter, req *Request, resp *Response) error
}

// ContainerFunc adapts a function to the Container interface.
type ContainerFunc func(w http.ResponseWriter, req *Request, resp *Response) error

func (f ContainerFunc) Emit(w http.ResponseWriter, req *Request, resp *Response) error {
	return f(w, req, resp)
}
