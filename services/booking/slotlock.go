package booking

import "sync"

// slotLocker serializes the check-then-create sequence per slot key so
// two concurrent creates for the same slot cannot both pass the
// availability check. The sparse unique index on slot_key backs this
// up at the storage layer. Entries are evicted once the last holder
// releases, so the map stays bounded by in-flight creates.
type slotLocker struct {
	mu    sync.Mutex
	locks map[string]*slotLock
}

type slotLock struct {
	mu      sync.Mutex
	waiters int
}

func newSlotLocker() *slotLocker {
	return &slotLocker{locks: make(map[string]*slotLock)}
}

// acquire locks the mutex for key and returns its release func.
func (l *slotLocker) acquire(key string) func() {
	l.mu.Lock()
	s, ok := l.locks[key]
	if !ok {
		s = &slotLock{}
		l.locks[key] = s
	}
	s.waiters++
	l.mu.Unlock()

	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		l.mu.Lock()
		s.waiters--
		if s.waiters == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}
