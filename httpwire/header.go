package httpwire

import (
	"fmt"
	"strings"
)

// Header is a case-insensitive header map. Keys are stored lowercased;
// duplicate headers and folded continuation lines are joined into one
// value with ", ".
type Header map[string]string

// Get returns the value for key, or "" when absent.
func (h Header) Get(key string) string {
	return h[strings.ToLower(key)]
}

// Has reports whether key is present.
func (h Header) Has(key string) bool {
	_, ok := h[strings.ToLower(key)]
	return ok
}

// Add records a value for key, joining it to any previous value with
// ", ".
func (h Header) Add(key, value string) {
	k := strings.ToLower(key)
	if prev, ok := h[k]; ok {
		h[k] = prev + ", " + value
		return
	}
	h[k] = value
}

// ParseHeaders decodes a block of header lines. A line starting with a
// space or tab continues the previous header's value; both are joined
// with ", ". Parsing stops at the first empty line.
func ParseHeaders(block string) (Header, error) {
	h := Header{}
	last := ""
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if len(line) == 0 {
			break
		}
		if line[0] == ' ' || line[0] == '\t' {
			if last == "" {
				return nil, fmt.Errorf("%w: continuation line with no header", ErrMalformedHeader)
			}
			h.Add(last, strings.TrimSpace(line))
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("%w: no colon in %q", ErrMalformedHeader, line)
		}
		key = strings.TrimSpace(key)
		h.Add(key, strings.TrimSpace(value))
		last = key
	}
	return h, nil
}
