// Package bootstrapcoord implements the Bootstrap Coordinator: the
// singleton rendezvous point that serializes ring joins with a single
// non-reentrant mutex and hands clients any known member node.
package bootstrapcoord

import (
	"errors"
	"math/rand"
	"sync"

	"ringquorum/internal/identifier"
	"ringquorum/internal/logger"
)

// ErrBusy is returned by GetJoinNode when another join is already in
// progress. It is the only error GetJoinNode produces; callers retry
// after a configured delay.
var ErrBusy = errors.New("bootstrapcoord: a join is already in progress")

// Coordinator gates concurrent ring joins and serves clients a member
// node to talk to. Its node list only ever grows; node departure is
// not handled.
type Coordinator struct {
	space identifier.Space
	lgr   logger.Logger

	// token is a one-slot mutex: GetJoinNode acquires it with a
	// non-blocking send, PostJoin releases it with a non-blocking
	// receive. Acquire and release happen on different RPCs (often
	// different goroutines entirely), so a sync.Mutex cannot model
	// this discipline -- there is no "owning" goroutine to unlock it.
	token chan struct{}

	mu    sync.Mutex // guards nodes
	nodes []identifier.NodeInfo

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New constructs a Coordinator for the given identifier space.
func New(space identifier.Space, lgr logger.Logger) *Coordinator {
	if lgr == nil {
		lgr = logger.NopLogger{}
	}
	return &Coordinator{
		space: space,
		lgr:   lgr,
		token: make(chan struct{}, 1),
		rng:   rand.New(rand.NewSource(rand.Int63())),
	}
}

func (c *Coordinator) randIndex(n int) int {
	c.rngMu.Lock()
	defer c.rngMu.Unlock()
	return c.rng.Intn(n)
}

// GetJoinNode gates a join attempt. A non-blocking acquire of the
// join token either succeeds (in which case the caller holds the token
// until it calls PostJoin) or fails with ErrBusy. On an empty ring the
// joiner is recorded and the sentinel zero NodeInfo is returned, telling
// it to become the ring's first member; otherwise a uniformly random
// existing member is returned as the join target.
func (c *Coordinator) GetJoinNode(addr string) (identifier.NodeInfo, error) {
	select {
	case c.token <- struct{}{}:
	default:
		c.lgr.Debug("GetJoinNode: busy", logger.F("addr", addr))
		return identifier.NodeInfo{}, ErrBusy
	}

	joiner := identifier.NodeInfo{ID: c.space.HashString(addr), Addr: addr}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.nodes) == 0 {
		c.nodes = append(c.nodes, joiner)
		c.lgr.Info("GetJoinNode: ring was empty, joiner becomes first member", logger.FNode("joiner", joiner))
		return identifier.NodeInfo{}, nil
	}

	existing := c.nodes[c.randIndex(len(c.nodes))]
	c.nodes = append(c.nodes, joiner)
	c.lgr.Info("GetJoinNode: assigned join target",
		logger.FNode("joiner", joiner), logger.FNode("target", existing))
	return existing, nil
}

// PostJoin releases the join token. The caller is expected to be the
// node that most recently acquired it via GetJoinNode; no ownership
// check is enforced.
func (c *Coordinator) PostJoin() {
	select {
	case <-c.token:
	default:
	}
	c.lgr.Debug("PostJoin: token released")
}

// GetNodeForClient returns a uniformly random known node, unsynchronized
// with respect to concurrent joins: a client may observe
// a node list snapshot from slightly before or after a join in flight.
func (c *Coordinator) GetNodeForClient() (identifier.NodeInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.nodes) == 0 {
		return identifier.NodeInfo{}, errors.New("bootstrapcoord: no nodes known yet")
	}
	return c.nodes[c.randIndex(len(c.nodes))], nil
}
