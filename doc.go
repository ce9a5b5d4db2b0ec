// Package hcdrive provides the shared state for a small cloud-drive file
// sharing server: the in-memory registry of shared files, the load
// statistics counters, and the storage interface backing them.
//
// The HTTP/1.1 serving substrate lives in the httpwire package and is
// built from scratch on raw byte streams; no HTTP library is involved.
// The server package drives httpwire and dispatches decoded requests
// against the registry. The filesystem package implements FileStorage on
// a sandboxed directory root.
//
// Both the registry and the statistics counters are safe for concurrent
// use from many connection-handling goroutines. Each guards its state
// with a mutex paired with a condition variable that broadcasts on every
// mutation, so observers can block on "state changed".
package hcdrive
