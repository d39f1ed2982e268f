// Package keymutex provides a mutual-exclusion map keyed by string.
//
// The engine has two check-then-write sequences that would otherwise race
// under concurrent callers: the managed-storage audio copy and the insights
// cache read-compute-write cycle. Serializing per key gives an at-most-one-
// in-flight guarantee for each managed directory and each cache fingerprint
// without a global lock.
package keymutex

import "sync"

// Map hands out one mutex per key. The zero value is ready to use.
type Map struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// Lock acquires the mutex for key, blocking until it is available, and
// returns the matching unlock function. Entries are dropped once the last
// holder releases, so the map does not grow with the universe of keys.
func (m *Map) Lock(key string) (unlock func()) {
	m.mu.Lock()
	if m.locks == nil {
		m.locks = make(map[string]*entry)
	}
	e, ok := m.locks[key]
	if !ok {
		e = &entry{}
		m.locks[key] = e
	}
	e.refs++
	m.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		m.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(m.locks, key)
		}
		m.mu.Unlock()
	}
}
