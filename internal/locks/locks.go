// Package locks provides the two per-file locking disciplines the
// Quorum Coordinator selects between at startup: an exclusive lock
// and a reader/writer lock. Both satisfy FileLock.
package locks

import "sync"

// FileLock is the capability set the coordinator dispatches through,
// regardless of which concrete discipline backs a given file.
type FileLock interface {
	AcquireRead()
	ReleaseRead()
	AcquireWrite()
	ReleaseWrite()
}

// StandardLock is a single exclusive lock: reads and writes are
// indistinguishable, so acquiring either blocks every other acquirer.
type StandardLock struct {
	mu sync.Mutex
}

// NewStandardLock returns a ready-to-use exclusive lock.
func NewStandardLock() *StandardLock {
	return &StandardLock{}
}

func (l *StandardLock) AcquireRead() { l.mu.Lock() }

func (l *StandardLock) ReleaseRead() { l.mu.Unlock() }

func (l *StandardLock) AcquireWrite() { l.mu.Lock() }

func (l *StandardLock) ReleaseWrite() { l.mu.Unlock() }

// ReadWriteLock lets any number of readers proceed concurrently but
// excludes readers from writers and writers from each other. Writers
// are not prioritized: a steady stream of readers can starve a writer.
type ReadWriteLock struct {
	mu      sync.Mutex
	cond    *sync.Cond
	readers int
	writer  bool
}

// NewReadWriteLock returns a ready-to-use reader/writer lock.
func NewReadWriteLock() *ReadWriteLock {
	l := &ReadWriteLock{}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// AcquireRead waits until no writer holds the lock, then registers as
// a reader.
func (l *ReadWriteLock) AcquireRead() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for l.writer {
		l.cond.Wait()
	}
	l.readers++
}

// ReleaseRead deregisters as a reader, waking any writer waiting for
// the reader count to reach zero.
func (l *ReadWriteLock) ReleaseRead() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.readers--
	if l.readers == 0 {
		l.cond.Broadcast()
	}
}

// AcquireWrite waits until there is no active writer and no active
// reader, then takes the lock exclusively.
func (l *ReadWriteLock) AcquireWrite() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for l.writer || l.readers > 0 {
		l.cond.Wait()
	}
	l.writer = true
}

// ReleaseWrite releases the exclusive hold, waking any readers or
// writers waiting on it.
func (l *ReadWriteLock) ReleaseWrite() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer = false
	l.cond.Broadcast()
}
