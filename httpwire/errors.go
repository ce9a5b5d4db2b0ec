package httpwire

import "errors"

var (
	// ErrConnectionClosed is reported when the peer closes the stream
	// before a delimiter arrives. Callers treat it as end-of-connection.
	ErrConnectionClosed = errors.New("connection closed")

	// ErrShortRead is reported when the stream ends before an
	// exact-length read completes.
	ErrShortRead = errors.New("short read")

	// ErrMalformedRequestLine is reported when the first request line
	// has fewer than three whitespace-separated tokens.
	ErrMalformedRequestLine = errors.New("malformed request line")

	// ErrMalformedHeader is reported for header lines that cannot be
	// parsed, including an unparsable Content-Length.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrMissingBoundary is reported when a multipart content type
	// carries no boundary parameter.
	ErrMissingBoundary = errors.New("missing multipart boundary")

	// ErrBadContentDisposition marks a multipart section whose
	// Content-Disposition could not be understood. It is recovered
	// locally with default field values, never fatal to the request.
	ErrBadContentDisposition = errors.New("bad content disposition")
)
