package httpwire

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Response statuses used by the server. The reason phrases are part of
// the served surface and stay as-is.
const (
	StatusOK       = "200 OK"
	StatusRedirect = "302 TEMPORARY REDIRECT"
	StatusNotFound = "404 NOT FOUND"
)

const httpDateFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// Response is one framed HTTP response: status line, Date, Connection,
// Content-Length and Content-Type headers, optional Location and
// Content-Disposition, then the body.
type Response struct {
	Status      string
	ContentType string
	Location    string // set on redirects
	Disposition string // set for attachment downloads
	KeepAlive   bool
	Body        []byte
}

// WriteTo frames the response and writes it to w in one call.
func (r *Response) WriteTo(w io.Writer) error {
	var head strings.Builder
	fmt.Fprintf(&head, "HTTP/1.1 %s\r\n", r.Status)
	fmt.Fprintf(&head, "Date: %s\r\n", time.Now().UTC().Format(httpDateFormat))
	if r.KeepAlive {
		head.WriteString("Connection: keep-alive\r\n")
	} else {
		head.WriteString("Connection: close\r\n")
	}
	if r.Disposition != "" {
		fmt.Fprintf(&head, "Content-Disposition: %s\r\n", r.Disposition)
	}
	fmt.Fprintf(&head, "Content-Length: %d\r\n", len(r.Body))
	fmt.Fprintf(&head, "Content-Type: %s\r\n", r.ContentType)
	if r.Location != "" {
		fmt.Fprintf(&head, "Location: %s\r\n", r.Location)
	}
	head.WriteString("\r\n")

	if _, err := io.WriteString(w, head.String()); err != nil {
		return fmt.Errorf("write response head: %w", err)
	}
	if _, err := w.Write(r.Body); err != nil {
		return fmt.Errorf("write response body: %w", err)
	}
	return nil
}
