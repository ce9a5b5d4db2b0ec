package httpwire

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var (
	headerEndCRLF = []byte("\r\n\r\n")
	headerEndLF   = []byte("\n\n")
)

// Request is one fully decoded HTTP request. It is constructed once by
// ReadRequest and not mutated afterwards.
type Request struct {
	Method string
	Target string // the raw request target, still percent-encoded
	Proto  string

	Path   string // target before '?', percent-decoded
	Params Params // target after '?', decoded

	Headers       Header
	KeepAlive     bool
	ContentLength int

	Body      []byte
	Plaintext string // body text for text/plain, text/html and urlencoded bodies
	Form      Form   // decoded urlencoded or multipart form fields
}

// ReadRequest decodes one request from the framer: the header block up
// to the blank-line terminator (CRLF-CRLF, with bare LF-LF tolerated for
// malformed clients), then exactly Content-Length body bytes. Any error
// is fatal to the connection; the caller closes it.
func ReadRequest(f *Framer) (*Request, error) {
	block, err := f.ReadUntil(headerEndCRLF, headerEndLF)
	if err != nil {
		return nil, err
	}

	text := string(block)
	firstLine, headerLines, _ := strings.Cut(text, "\n")
	tokens := strings.Fields(firstLine)
	if len(tokens) < 3 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedRequestLine, strings.TrimSpace(firstLine))
	}

	req := &Request{
		Method: tokens[0],
		Target: tokens[1],
		Proto:  tokens[2],
		Form:   Form{},
	}

	req.Headers, err = ParseHeaders(headerLines)
	if err != nil {
		return nil, err
	}

	rawPath, rawQuery, hasQuery := strings.Cut(req.Target, "?")
	req.Path = unquotePath(rawPath)
	if hasQuery {
		req.Params = ParseURLEncoded(rawQuery)
	} else {
		req.Params = Params{}
	}

	req.KeepAlive = strings.EqualFold(req.Headers.Get("Connection"), "keep-alive")

	if cl := req.Headers.Get("Content-Length"); cl != "" {
		n, err := strconv.Atoi(strings.TrimSpace(cl))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: content-length %q", ErrMalformedHeader, cl)
		}
		req.ContentLength = n
	}

	if req.ContentLength > 0 {
		req.Body, err = f.ReadExactly(req.ContentLength)
		if err != nil {
			return nil, err
		}
	}

	decodeBody(req)
	return req, nil
}

// unquotePath percent-decodes a request path, keeping the raw form when
// the encoding is broken.
func unquotePath(raw string) string {
	path, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return path
}
