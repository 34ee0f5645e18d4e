// Package quorumcoord implements the Quorum Coordinator: it serializes
// per-file access with a configurable lock discipline, samples random
// read/write quorums from a fixed server set, and aggregates version
// numbers to drive update/fetch against that quorum.
package quorumcoord

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"ringquorum/internal/locks"
	"ringquorum/internal/logger"
	"ringquorum/internal/rpcclient"
	"ringquorum/internal/telemetry"
)

// Coordinator is the singleton role co-located on one designated server.
type Coordinator struct {
	lgr           logger.Logger
	servers       []string
	qWrite, qRead int
	lockingScheme string
	peers         *peerClient

	tableMu   sync.Mutex
	fileLocks map[string]locks.FileLock

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New constructs a Coordinator over servers (addresses of every file
// server, including the one the coordinator is co-located on).
// lockingScheme is "default" or "readwrite".
func New(servers []string, qWrite, qRead int, lockingScheme string, pool *rpcclient.Pool, lgr logger.Logger) *Coordinator {
	if lgr == nil {
		lgr = logger.NopLogger{}
	}
	return &Coordinator{
		lgr:           lgr,
		servers:       servers,
		qWrite:        qWrite,
		qRead:         qRead,
		lockingScheme: lockingScheme,
		peers:         newPeerClient(pool),
		fileLocks:     make(map[string]locks.FileLock),
		rng:           rand.New(rand.NewSource(rand.Int63())),
	}
}

// getFileLock returns file's lock, creating one under tableMu on first
// reference. Entries are never removed.
func (c *Coordinator) getFileLock(file string) locks.FileLock {
	c.tableMu.Lock()
	defer c.tableMu.Unlock()
	if l, ok := c.fileLocks[file]; ok {
		return l
	}
	var l locks.FileLock
	if c.lockingScheme == "readwrite" {
		l = locks.NewReadWriteLock()
	} else {
		l = locks.NewStandardLock()
	}
	c.fileLocks[file] = l
	return l
}

// sampleQuorum picks k distinct servers uniformly at random without
// replacement.
func (c *Coordinator) sampleQuorum(k int) []string {
	c.rngMu.Lock()
	perm := c.rng.Perm(len(c.servers))
	c.rngMu.Unlock()
	if k > len(perm) {
		k = len(perm)
	}
	quorum := make([]string, k)
	for i := 0; i < k; i++ {
		quorum[i] = c.servers[perm[i]]
	}
	return quorum
}

// Write acquires the file's write lock, forms a write quorum, fetches
// the max existing version across it, and updates every member of the
// quorum with version+1.
func (c *Coordinator) Write(ctx context.Context, file, content string) error {
	ctx = telemetry.EnsureTraceID(ctx, "write")
	lgr := c.lgr.With(logger.F("op_id", telemetry.TraceIDFromContext(ctx)))

	lock := c.getFileLock(file)
	lock.AcquireWrite()
	defer lock.ReleaseWrite()

	quorum := c.sampleQuorum(c.qWrite)
	lgr.Debug("write: formed write quorum", logger.F("file", file), logger.F("quorum", quorum))

	var version int64
	for _, addr := range quorum {
		v, err := c.peers.GetVersion(ctx, addr, file)
		if err != nil {
			return fmt.Errorf("quorumcoord: get version from %s: %w", addr, err)
		}
		if v > version {
			version = v
		}
	}
	version++
	for _, addr := range quorum {
		if err := c.peers.Update(ctx, addr, file, version, content); err != nil {
			return fmt.Errorf("quorumcoord: update %s: %w", addr, err)
		}
	}
	lgr.Info("write: completed", logger.F("file", file), logger.F("version", version))
	return nil
}

// Read acquires the file's read lock, forms a read quorum, and fetches
// from whichever member reports the highest version (ties broken by
// selection order).
func (c *Coordinator) Read(ctx context.Context, file string) (string, error) {
	ctx = telemetry.EnsureTraceID(ctx, "read")
	lgr := c.lgr.With(logger.F("op_id", telemetry.TraceIDFromContext(ctx)))

	lock := c.getFileLock(file)
	lock.AcquireRead()
	defer lock.ReleaseRead()

	quorum := c.sampleQuorum(c.qRead)
	lgr.Debug("read: formed read quorum", logger.F("file", file), logger.F("quorum", quorum))

	var bestAddr string
	var bestVersion int64
	for _, addr := range quorum {
		v, err := c.peers.GetVersion(ctx, addr, file)
		if err != nil {
			return "", fmt.Errorf("quorumcoord: get version from %s: %w", addr, err)
		}
		if v > bestVersion {
			bestVersion = v
			bestAddr = addr
		}
	}
	if bestAddr == "" {
		return "", ErrFileNotFound
	}
	content, err := c.peers.Fetch(ctx, bestAddr, file)
	if err != nil {
		return "", fmt.Errorf("quorumcoord: fetch from %s: %w", bestAddr, err)
	}
	lgr.Info("read: completed", logger.F("file", file), logger.F("version", bestVersion), logger.F("from", bestAddr))
	return content, nil
}

// ListFiles holds the file-table lock and every per-file lock in read mode for the whole call, so it
// observes a snapshot consistent with any write that has already
// released its lock.
func (c *Coordinator) ListFiles(ctx context.Context) ([]FileObject, error) {
	ctx = telemetry.EnsureTraceID(ctx, "list")
	lgr := c.lgr.With(logger.F("op_id", telemetry.TraceIDFromContext(ctx)))

	c.tableMu.Lock()
	defer c.tableMu.Unlock()

	acquired := make([]locks.FileLock, 0, len(c.fileLocks))
	for _, l := range c.fileLocks {
		l.AcquireRead()
		acquired = append(acquired, l)
	}
	defer func() {
		for _, l := range acquired {
			l.ReleaseRead()
		}
	}()

	quorum := c.sampleQuorum(c.qRead)
	lgr.Debug("listFiles: formed read quorum", logger.F("quorum", quorum))

	versions := make(map[string]int64)
	for _, addr := range quorum {
		files, err := c.peers.GetFiles(ctx, addr)
		if err != nil {
			return nil, fmt.Errorf("quorumcoord: get files from %s: %w", addr, err)
		}
		for _, f := range files {
			if f.Version > versions[f.Name] {
				versions[f.Name] = f.Version
			}
		}
	}
	out := make([]FileObject, 0, len(versions))
	for name, v := range versions {
		out = append(out, FileObject{Name: name, Version: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
