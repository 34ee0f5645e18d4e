// Package rpcclient maintains one reusable grpc.ClientConn per remote
// address, shared by the ring node, dictionary client, quorum
// coordinator, and file client. Every caller wraps the returned
// connection in whichever typed client stub it needs
// (ringv1.NewRingClient, quorumv1.NewQuorumClient, ...).
package rpcclient

import (
	"context"
	"sync"
	"time"

	_ "ringquorum/internal/rpccodec"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Pool dials connections lazily and reuses them by address, closing
// any that have sat idle past idleTTL.
type Pool struct {
	mu          sync.RWMutex
	conns       map[string]*connEntry
	dialTimeout time.Duration
	idleTTL     time.Duration
	dialOpts    []grpc.DialOption
	stopCh      chan struct{}
}

type connEntry struct {
	conn     *grpc.ClientConn
	lastUsed time.Time
}

// New returns a Pool. dialTimeout bounds how long a fresh dial may take;
// when idleTTL > 0 a background goroutine periodically closes
// connections unused for at least that long. extraOpts are appended
// after the pool's own transport-credential option, letting callers add
// e.g. a unary client interceptor chain.
func New(dialTimeout, idleTTL time.Duration, extraOpts ...grpc.DialOption) *Pool {
	p := &Pool{
		conns:       make(map[string]*connEntry),
		dialTimeout: dialTimeout,
		idleTTL:     idleTTL,
		dialOpts:    append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, extraOpts...),
		stopCh:      make(chan struct{}),
	}
	if idleTTL > 0 {
		go p.evictLoop()
	}
	return p
}

// Close closes every pooled connection and stops the eviction loop.
func (p *Pool) Close() {
	close(p.stopCh)
	p.mu.Lock()
	defer p.mu.Unlock()
	for addr, ce := range p.conns {
		_ = ce.conn.Close()
		delete(p.conns, addr)
	}
}

// Conn returns a connection to addr, dialing one if none is cached yet.
func (p *Pool) Conn(ctx context.Context, addr string) (*grpc.ClientConn, error) {
	p.mu.RLock()
	if ce, ok := p.conns[addr]; ok {
		ce.lastUsed = time.Now()
		conn := ce.conn
		p.mu.RUnlock()
		return conn, nil
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if ce, ok := p.conns[addr]; ok {
		ce.lastUsed = time.Now()
		return ce.conn, nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, p.dialTimeout)
	defer cancel()
	conn, err := grpc.DialContext(dialCtx, addr, p.dialOpts...)
	if err != nil {
		return nil, err
	}
	p.conns[addr] = &connEntry{conn: conn, lastUsed: time.Now()}
	return conn, nil
}

func (p *Pool) evictLoop() {
	t := time.NewTicker(15 * time.Second)
	defer t.Stop()
	for {
		select {
		case <-p.stopCh:
			return
		case <-t.C:
			p.evictIdle()
		}
	}
}

func (p *Pool) evictIdle() {
	if p.idleTTL <= 0 {
		return
	}
	cutoff := time.Now().Add(-p.idleTTL)
	p.mu.Lock()
	defer p.mu.Unlock()
	for addr, ce := range p.conns {
		if ce.lastUsed.Before(cutoff) {
			_ = ce.conn.Close()
			delete(p.conns, addr)
		}
	}
}
