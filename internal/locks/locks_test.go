package locks

import (
	"sync"
	"testing"
	"time"
)

func TestStandardLockExcludesReadAndWrite(t *testing.T) {
	l := NewStandardLock()
	l.AcquireWrite()

	acquired := make(chan struct{})
	go func() {
		l.AcquireRead()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("AcquireRead returned while write lock held")
	case <-time.After(20 * time.Millisecond):
	}

	l.ReleaseWrite()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("AcquireRead never returned after ReleaseWrite")
	}
	l.ReleaseRead()
}

func TestReadWriteLockConcurrentReaders(t *testing.T) {
	l := NewReadWriteLock()
	var wg sync.WaitGroup
	active := make(chan struct{}, 2)
	release := make(chan struct{})

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.AcquireRead()
			active <- struct{}{}
			<-release
			l.ReleaseRead()
		}()
	}

	for i := 0; i < 2; i++ {
		select {
		case <-active:
		case <-time.After(time.Second):
			t.Fatal("readers did not run concurrently")
		}
	}
	close(release)
	wg.Wait()
}

func TestReadWriteLockWriterExcludesReaders(t *testing.T) {
	l := NewReadWriteLock()
	l.AcquireWrite()

	readerDone := make(chan struct{})
	go func() {
		l.AcquireRead()
		close(readerDone)
		l.ReleaseRead()
	}()

	select {
	case <-readerDone:
		t.Fatal("reader acquired while writer held the lock")
	case <-time.After(20 * time.Millisecond):
	}

	l.ReleaseWrite()
	select {
	case <-readerDone:
	case <-time.After(time.Second):
		t.Fatal("reader never acquired after ReleaseWrite")
	}
}

func TestReadWriteLockWriterWaitsForReaders(t *testing.T) {
	l := NewReadWriteLock()
	l.AcquireRead()

	writerDone := make(chan struct{})
	go func() {
		l.AcquireWrite()
		close(writerDone)
		l.ReleaseWrite()
	}()

	select {
	case <-writerDone:
		t.Fatal("writer acquired while a reader was active")
	case <-time.After(20 * time.Millisecond):
	}

	l.ReleaseRead()
	select {
	case <-writerDone:
	case <-time.After(time.Second):
		t.Fatal("writer never acquired after last reader released")
	}
}
