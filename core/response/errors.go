package response

import "errors"

var (
	// ErrAlreadySent is returned by Send on a response that was already sent.
	ErrAlreadySent = errors.New("response already sent")

	// ErrNoSigner indicates a signed cookie was requested without a configured signer.
	ErrNoSigner = errors.New("no signer configured for signed cookies")

	// ErrSigningFailed wraps failures of the signer while creating a signed cookie.
	ErrSigningFailed = errors.New("failed to sign cookie value")

	// ErrRenderBody indicates the body could not be converted to text.
	ErrRenderBody = errors.New("failed to render response body")

	// ErrCompress indicates the body could not be gzip-compressed.
	ErrCompress = errors.New("failed to compress response body")

	// ErrWrite indicates the transport rejected the body bytes.
	ErrWrite = errors.New("failed to write response body")

	// ErrContainer wraps failures returned by a response container.
	ErrContainer = errors.New("response container failed")

	// ErrStreamingUnsupported indicates the writer can't flush partial output.
	ErrStreamingUnsupported = errors.New("streaming unsupported by response writer")

	// ErrUnknownCharset is returned by CharsetFilter for charsets x/text doesn't know.
	ErrUnknownCharset = errors.New("unknown charset")
)
