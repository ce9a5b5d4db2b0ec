package httpwire

import (
	"net/url"
	"strings"
)

// Params holds decoded query or urlencoded-form parameters. A key ending
// in "[]" accumulates all its values, in order, under the key with the
// suffix stripped; a plain key keeps only its last value.
type Params map[string][]string

// Get returns the first value for key, or "" when absent.
func (p Params) Get(key string) string {
	if vs := p[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// All returns every value recorded for key, in order.
func (p Params) All(key string) []string {
	return p[key]
}

// ParseURLEncoded decodes a query string or urlencoded form body.
// Percent-escapes and '+' are decoded in both keys and values; parts
// without '=' are ignored, as are keys or values that fail to decode.
func ParseURLEncoded(s string) Params {
	p := Params{}
	for _, part := range strings.Split(s, "&") {
		rawKey, rawVal, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			continue
		}
		val, err := url.QueryUnescape(rawVal)
		if err != nil {
			continue
		}
		if name, isList := strings.CutSuffix(key, "[]"); isList {
			p[name] = append(p[name], val)
		} else {
			p[key] = []string{val}
		}
	}
	return p
}
