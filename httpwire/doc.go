// Package httpwire implements just enough of HTTP/1.1 directly on raw
// byte streams to serve browsers: request framing, header parsing with
// continuation-line folding, query-string decoding, urlencoded and
// multipart/form-data body decoding, and response writing.
//
// The Framer turns a stream that may deliver arbitrary partial reads
// into delimited or fixed-length chunks; bytes read past a boundary are
// retained and become the prefix of the next read, which is what makes
// persistent connections work. Decode failures are reported as typed
// sentinel errors, never panics; a failure is fatal to its connection
// only.
//
// Not supported: TLS, pipelining, chunked transfer-encoding, and HTTP/2.
package httpwire
