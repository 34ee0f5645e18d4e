// Package ringnode implements a single Chord ring participant: its
// finger table, its authoritative word/definition store, the routing
// algorithms (closestPrecedingFinger, findPredecessor, findSuccessor),
// the put/get data plane, and the join protocol a node runs once at
// startup.
package ringnode

import (
	"context"
	"fmt"
	"time"

	bootstrapv1 "ringquorum/internal/api/bootstrap/v1"
	"ringquorum/internal/identifier"
	"ringquorum/internal/logger"
	"ringquorum/internal/rpcclient"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Node is a single ring participant.
type Node struct {
	lgr     logger.Logger
	space   identifier.Space
	self    identifier.NodeInfo
	fingers *FingerTable
	dict    *dictionary
	caching bool
	peers   *peerClient
}

// NewNode constructs a Node. It does not join the ring; call Join for that.
func NewNode(self identifier.NodeInfo, space identifier.Space, caching bool, pool *rpcclient.Pool, lgr logger.Logger) *Node {
	if lgr == nil {
		lgr = logger.NopLogger{}
	}
	return &Node{
		lgr:     lgr,
		space:   space,
		self:    self,
		fingers: New(self, space, WithLogger(lgr)),
		dict:    newDictionary(lgr),
		caching: caching,
		peers:   newPeerClient(pool),
	}
}

// Self returns this node's own identity.
func (n *Node) Self() identifier.NodeInfo { return n.self }

// Fingers exposes the finger table, mainly for tests and debug logging.
func (n *Node) Fingers() *FingerTable { return n.fingers }

// ---- routing ----

// ClosestPrecedingFinger delegates to the finger table.
func (n *Node) ClosestPrecedingFinger(key identifier.ID) identifier.NodeInfo {
	return n.fingers.ClosestPrecedingFinger(key)
}

// FindPredecessor returns the node that immediately precedes key on the
// ring. When this node already owns the answer it returns itself
// directly; otherwise it forwards exactly one RPC hop to the closest
// preceding finger and returns that hop's answer unchanged. A node
// never forwards to itself: that would indicate corrupted finger-table
// state, so it is treated as ErrRoutingLoop instead of looping forever.
func (n *Node) FindPredecessor(ctx context.Context, key identifier.ID) (identifier.NodeInfo, error) {
	successor := n.fingers.Successor()
	if key.InOpenClosed(n.self.ID, successor.ID) {
		return n.self, nil
	}
	next := n.fingers.ClosestPrecedingFinger(key)
	if next.IsZero() || next.Equal(n.self) {
		n.lgr.Error("FindPredecessor: routing would loop to self", logger.F("key", key.String()))
		return identifier.NodeInfo{}, ErrRoutingLoop
	}
	return n.peers.FindPredecessor(ctx, next.Addr, key)
}

// FindSuccessor returns the node responsible for key.
func (n *Node) FindSuccessor(ctx context.Context, key identifier.ID) (identifier.NodeInfo, error) {
	pred, err := n.FindPredecessor(ctx, key)
	if err != nil {
		return identifier.NodeInfo{}, err
	}
	if pred.Equal(n.self) {
		return n.fingers.Successor(), nil
	}
	return n.peers.GetSuccessor(ctx, pred.Addr)
}

// ---- data plane ----

func (n *Node) owns(wid identifier.ID) bool {
	return wid.InOpenClosed(n.fingers.Predecessor().ID, n.self.ID)
}

// Put inserts word/definition at the node responsible for word,
// forwarding through the ring as needed. With caching enabled a copy is
// also kept at every forwarding hop, and re-insertion is rejected
// wherever a copy lives.
func (n *Node) Put(ctx context.Context, word, definition string) error {
	wid := n.space.HashString(word)
	if n.caching && n.dict.has(word) {
		return ErrDuplicateWord
	}
	if n.owns(wid) {
		if n.dict.has(word) {
			return ErrDuplicateWord
		}
		n.dict.put(word, definition)
		return nil
	}
	if n.caching {
		n.dict.put(word, definition)
	}
	next := n.fingers.ClosestPrecedingFinger(wid)
	if next.IsZero() || next.Equal(n.self) {
		n.lgr.Error("Put: routing would loop to self", logger.F("word", word))
		return ErrRoutingLoop
	}
	return n.peers.Put(ctx, next.Addr, word, definition)
}

// Get retrieves word's definition, forwarding through the ring as needed.
func (n *Node) Get(ctx context.Context, word string) (string, error) {
	if def, ok := n.dict.get(word); ok {
		return def, nil
	}
	wid := n.space.HashString(word)
	if n.owns(wid) {
		return "", ErrWordNotFound
	}
	next := n.fingers.ClosestPrecedingFinger(wid)
	if next.IsZero() || next.Equal(n.self) {
		n.lgr.Error("Get: routing would loop to self", logger.F("word", word))
		return "", ErrRoutingLoop
	}
	return n.peers.Get(ctx, next.Addr, word)
}

// ---- membership RPCs ----

func (n *Node) GetPredecessor() identifier.NodeInfo { return n.fingers.Predecessor() }

func (n *Node) GetSuccessor() identifier.NodeInfo { return n.fingers.Successor() }

func (n *Node) UpdatePredecessor(newNode identifier.NodeInfo) {
	n.fingers.SetPredecessor(newNode)
}

func (n *Node) UpdateSuccessor(newNode identifier.NodeInfo) {
	n.fingers.SetSuccessor(newNode)
}

// UpdateFingerTable applies the propagation step of the join protocol:
// if newNode belongs in slot i, overwrite it
// and forward the same update to the predecessor, stopping once the
// predecessor is newNode itself.
func (n *Node) UpdateFingerTable(ctx context.Context, newNode identifier.NodeInfo, i int) error {
	if newNode.Equal(n.self) {
		return nil
	}
	current := n.fingers.Finger(i)
	if newNode.Equal(current) {
		return nil
	}
	// A finger still pointing at self spans the whole ring, so any other
	// node is a better candidate for the slot; InClosed would read the
	// degenerate interval as the single point self instead.
	if !current.Equal(n.self) && !newNode.ID.InClosed(n.self.ID, current.ID) {
		return nil
	}
	n.fingers.SetFinger(i, newNode)
	pred := n.fingers.Predecessor()
	if pred.Equal(newNode) || pred.IsZero() {
		return nil
	}
	return n.peers.UpdateFingerTable(ctx, pred.Addr, newNode, i)
}

// ---- join protocol ----

// Join executes the join protocol once at startup against the Bootstrap
// Coordinator at bootstrapAddr.
func (n *Node) Join(ctx context.Context, bootstrapAddr string, sleepDelay time.Duration) error {
	conn, err := n.peers.pool.Conn(ctx, bootstrapAddr)
	if err != nil {
		return fmt.Errorf("ringnode: dialing bootstrap coordinator: %w", err)
	}
	coord := bootstrapv1.NewBootstrapClient(conn)

	var resp *bootstrapv1.GetJoinNodeResponse
	for {
		resp, err = coord.GetJoinNode(ctx, &bootstrapv1.GetJoinNodeRequest{Addr: n.self.Addr})
		if err == nil {
			break
		}
		if status.Code(err) != codes.Unavailable {
			return fmt.Errorf("ringnode: get join node: %w", err)
		}
		n.lgr.Debug("join: bootstrap coordinator busy, retrying", logger.F("delay", sleepDelay.String()))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleepDelay):
		}
	}
	joinNode := fromWireBootstrap(resp.Node)

	if joinNode.IsZero() {
		n.fingers.InitSingleNode()
		n.lgr.Info("join: ring was empty, initialized as single-node ring")
	} else if err := n.joinExisting(ctx, joinNode); err != nil {
		return err
	}

	if _, err := coord.PostJoin(ctx, &bootstrapv1.PostJoinRequest{}); err != nil {
		return fmt.Errorf("ringnode: post join: %w", err)
	}
	n.fingers.DebugLog()
	return nil
}

func fromWireBootstrap(n bootstrapv1.NodeInfo) identifier.NodeInfo {
	if len(n.ID) == 0 && n.Addr == "" {
		return identifier.NodeInfo{}
	}
	return identifier.NodeInfo{ID: identifier.ID(n.ID), Addr: n.Addr}
}

func (n *Node) joinExisting(ctx context.Context, joinNode identifier.NodeInfo) error {
	m := n.fingers.M()

	pred, err := n.peers.FindPredecessor(ctx, joinNode.Addr, n.self.ID)
	if err != nil {
		return fmt.Errorf("ringnode: join: find predecessor: %w", err)
	}
	n.fingers.SetPredecessor(pred)

	succ, err := n.peers.FindSuccessor(ctx, joinNode.Addr, n.self.ID)
	if err != nil {
		return fmt.Errorf("ringnode: join: find successor: %w", err)
	}
	n.fingers.SetSuccessor(succ)

	for i := 0; i < m-1; i++ {
		start := n.space.FingerStart(n.self.ID, i+1)
		prevFinger := n.fingers.Finger(i)
		switch {
		case start.InClosedOpen(pred.ID, n.self.ID) && !start.Equal(pred.ID):
			n.fingers.SetFinger(i+1, n.self)
		case start.InClosedOpen(n.self.ID, prevFinger.ID) && !start.Equal(prevFinger.ID):
			n.fingers.SetFinger(i+1, prevFinger)
		default:
			next, err := n.peers.FindSuccessor(ctx, joinNode.Addr, start)
			if err != nil {
				return fmt.Errorf("ringnode: join: finger %d: %w", i+1, err)
			}
			n.fingers.SetFinger(i+1, next)
		}
	}

	if err := n.peers.UpdatePredecessor(ctx, n.fingers.Successor().Addr, n.self); err != nil {
		return fmt.Errorf("ringnode: join: notify successor: %w", err)
	}
	if err := n.peers.UpdateSuccessor(ctx, pred.Addr, n.self); err != nil {
		return fmt.Errorf("ringnode: join: notify predecessor: %w", err)
	}

	for i := 0; i < m; i++ {
		pID := predecessorTarget(n.space, n.self.ID, i)
		target, err := n.FindPredecessor(ctx, pID)
		if err != nil {
			return fmt.Errorf("ringnode: join: locating finger-%d updater: %w", i, err)
		}
		if target.Equal(n.self) {
			continue
		}
		if err := n.peers.UpdateFingerTable(ctx, target.Addr, n.self, i); err != nil {
			return fmt.Errorf("ringnode: join: propagating finger %d: %w", i, err)
		}
	}
	return nil
}

// predecessorTarget computes (self - 2^i + 1) mod 2^Bits, the point
// whose predecessor must learn about self as its i-th finger.
func predecessorTarget(space identifier.Space, self identifier.ID, i int) identifier.ID {
	offset := space.FingerStart(space.Zero(), i)
	shifted := space.SubMod(self, offset)
	return space.AddMod(shifted, space.FromUint64(1))
}
