package hcdrive

import "sync"

// Stats holds the server load counters. Every mutation happens under the
// lock and is followed by a broadcast on the paired condition variable.
// Nothing blocks on the condition today; the broadcast is the contract
// for observers that want to wait for changes.
type Stats struct {
	mu      sync.Mutex
	changed *sync.Cond

	connectionsTotal int64
	connectionsNow   int64
	localFiles       int64
	uploads          int64
	downloads        int64
}

func NewStats() *Stats {
	s := &Stats{}
	s.changed = sync.NewCond(&s.mu)
	return s
}

// ConnectionOpened records a newly accepted front-end connection.
func (s *Stats) ConnectionOpened() {
	s.mu.Lock()
	s.connectionsTotal++
	s.connectionsNow++
	s.changed.Broadcast()
	s.mu.Unlock()
}

// ConnectionClosed records the end of a front-end connection.
func (s *Stats) ConnectionClosed() {
	s.mu.Lock()
	s.connectionsNow--
	s.changed.Broadcast()
	s.mu.Unlock()
}

// FileAdded records one successful upload of a new shared file.
func (s *Stats) FileAdded() {
	s.mu.Lock()
	s.localFiles++
	s.uploads++
	s.changed.Broadcast()
	s.mu.Unlock()
}

// FileRemoved records one successful delete of a shared file.
func (s *Stats) FileRemoved() {
	s.mu.Lock()
	s.localFiles--
	s.changed.Broadcast()
	s.mu.Unlock()
}

// DownloadServed records one shared file sent to a client.
func (s *Stats) DownloadServed() {
	s.mu.Lock()
	s.downloads++
	s.changed.Broadcast()
	s.mu.Unlock()
}

// SetLocalFiles seeds the local file counter, used once at startup after
// scanning the share directory.
func (s *Stats) SetLocalFiles(n int64) {
	s.mu.Lock()
	s.localFiles = n
	s.changed.Broadcast()
	s.mu.Unlock()
}

// Snapshot returns a consistent copy of all counters.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StatsSnapshot{
		ConnectionsTotal: s.connectionsTotal,
		ConnectionsNow:   s.connectionsNow,
		LocalFiles:       s.localFiles,
		Uploads:          s.uploads,
		Downloads:        s.downloads,
	}
}
