package httpwire

import (
	"log/slog"
	"strings"
)

// decodeBody fills Form and Plaintext from the raw body according to
// the declared content type. Unrecognized or absent media types leave
// the form empty without failing the request; multipart trouble is
// logged and recovered, never fatal.
func decodeBody(req *Request) {
	if len(req.Body) == 0 {
		return
	}
	ctype := req.Headers.Get("Content-Type")
	lower := strings.ToLower(ctype)

	switch {
	case strings.Contains(lower, "application/x-www-form-urlencoded"):
		req.Plaintext = string(req.Body)
		req.Form = formFromParams(ParseURLEncoded(req.Plaintext))
	case strings.Contains(lower, "multipart/form-data"):
		boundary, err := multipartBoundary(ctype)
		if err != nil {
			slog.Error("multipart body has no usable boundary", "content_type", ctype, "err", err)
			break
		}
		req.Form = ParseMultipart(boundary, req.Body)
	}

	if strings.Contains(lower, "text/plain") || strings.Contains(lower, "text/html") {
		req.Plaintext = string(req.Body)
	}
}

// multipartBoundary extracts the boundary token from a multipart
// content type, stripping surrounding quotes some browsers add.
func multipartBoundary(ctype string) (string, error) {
	_, params, ok := strings.Cut(ctype, ";")
	if !ok {
		return "", ErrMissingBoundary
	}
	params = strings.TrimSpace(params)
	if !strings.HasPrefix(strings.ToLower(params), "boundary=") {
		return "", ErrMissingBoundary
	}
	_, boundary, _ := strings.Cut(params, "=")
	if strings.HasPrefix(boundary, `"`) && strings.HasSuffix(boundary, `"`) && len(boundary) >= 2 {
		boundary = boundary[1 : len(boundary)-1]
	}
	if boundary == "" {
		return "", ErrMissingBoundary
	}
	return boundary, nil
}
