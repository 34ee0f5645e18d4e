package ringnode

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
	"testing"
	"time"

	bootstrapv1 "ringquorum/internal/api/bootstrap/v1"
	ringv1 "ringquorum/internal/api/ring/v1"
	"ringquorum/internal/bootstrapcoord"
	"ringquorum/internal/identifier"
	"ringquorum/internal/rpcclient"

	"google.golang.org/grpc"
)

func testSpace(t *testing.T, bits int) identifier.Space {
	t.Helper()
	sp, err := identifier.NewSpace(bits)
	if err != nil {
		t.Fatalf("NewSpace: %v", err)
	}
	return sp
}

// --- single-node ring ---

func TestSingleNodePutGetDuplicateNotFound(t *testing.T) {
	space := testSpace(t, 8)
	self := identifier.NodeInfo{ID: space.FromUint64(1), Addr: "self:1"}
	pool := rpcclient.New(time.Second, 0)
	defer pool.Close()

	node := NewNode(self, space, false, pool, nil)
	node.Fingers().InitSingleNode()

	ctx := context.Background()
	if err := node.Put(ctx, "apple", "fruit"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	def, err := node.Get(ctx, "apple")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if def != "fruit" {
		t.Fatalf("Get returned %q, want %q", def, "fruit")
	}
	if err := node.Put(ctx, "apple", "anything"); !errors.Is(err, ErrDuplicateWord) {
		t.Fatalf("expected ErrDuplicateWord on re-insert, got %v", err)
	}
	if _, err := node.Get(ctx, "pear"); !errors.Is(err, ErrWordNotFound) {
		t.Fatalf("expected ErrWordNotFound, got %v", err)
	}
}

// --- routing-loop invariant ---

// A node that has not finished joining (or whose finger table has been
// corrupted) must fail a lookup with ErrRoutingLoop instead of
// forwarding a request back to itself.
func TestFindPredecessorDetectsRoutingLoopOnUninitializedNode(t *testing.T) {
	space := testSpace(t, 8)
	self := identifier.NodeInfo{ID: space.FromUint64(100), Addr: "self:1"}
	pool := rpcclient.New(time.Second, 0)
	defer pool.Close()

	node := NewNode(self, space, false, pool, nil)
	key := space.FromUint64(50) // strictly below self.ID and outside any finger

	if _, err := node.FindPredecessor(context.Background(), key); !errors.Is(err, ErrRoutingLoop) {
		t.Fatalf("expected ErrRoutingLoop, got %v", err)
	}
}

func TestPutDetectsRoutingLoopOnUninitializedNode(t *testing.T) {
	space := testSpace(t, 8)
	self := identifier.NodeInfo{ID: space.FromUint64(100), Addr: "self:1"}
	pool := rpcclient.New(time.Second, 0)
	defer pool.Close()

	node := NewNode(self, space, false, pool, nil)
	word := wordHashingAbove(t, space, self.ID)

	if err := node.Put(context.Background(), word, "def"); !errors.Is(err, ErrRoutingLoop) {
		t.Fatalf("expected ErrRoutingLoop, got %v", err)
	}
}

// wordHashingAbove returns a word whose identifier hash compares greater
// than floor, so Put/Get on an otherwise-empty node is forced to forward
// rather than claim ownership.
func wordHashingAbove(t *testing.T, space identifier.Space, floor identifier.ID) string {
	t.Helper()
	for i := 0; i < 10000; i++ {
		word := fmt.Sprintf("word-%d", i)
		if space.HashString(word).Cmp(floor) > 0 {
			return word
		}
	}
	t.Fatal("could not find a word hashing above floor")
	return ""
}

// --- multi-node ring: join protocol and routing ---

// testRing drives join and routing exactly as cmd/ringnode/main.go does:
// listen, register the Service, start serving, then Join against a real
// Bootstrap Coordinator, all over real localhost connections.
type testRing struct {
	t       *testing.T
	space   identifier.Space
	pool    *rpcclient.Pool
	caching bool
	nodes   []*Node
}

func newTestRing(t *testing.T, bits int) *testRing {
	t.Helper()
	pool := rpcclient.New(2*time.Second, 0)
	t.Cleanup(pool.Close)
	return &testRing{t: t, space: testSpace(t, bits), pool: pool}
}

func (r *testRing) startBootstrap() string {
	r.t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		r.t.Fatalf("listen: %v", err)
	}
	coord := bootstrapcoord.New(r.space, nil)
	srv := grpc.NewServer()
	bootstrapv1.RegisterBootstrapServer(srv, bootstrapcoord.NewService(coord))
	go func() { _ = srv.Serve(lis) }()
	r.t.Cleanup(srv.Stop)
	return lis.Addr().String()
}

func (r *testRing) join(bootstrapAddr string) *Node {
	r.t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		r.t.Fatalf("listen: %v", err)
	}
	addr := lis.Addr().String()
	self := identifier.NodeInfo{ID: r.space.HashString(addr), Addr: addr}
	node := NewNode(self, r.space, r.caching, r.pool, nil)

	srv := grpc.NewServer()
	ringv1.RegisterRingServer(srv, NewService(node))
	go func() { _ = srv.Serve(lis) }()
	r.t.Cleanup(srv.Stop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := node.Join(ctx, bootstrapAddr, 10*time.Millisecond); err != nil {
		r.t.Fatalf("Join: %v", err)
	}

	r.nodes = append(r.nodes, node)
	return node
}

// sortedByID returns every node's identity sorted ascending by ID.
func (r *testRing) sortedByID() []identifier.NodeInfo {
	out := make([]identifier.NodeInfo, len(r.nodes))
	for i, n := range r.nodes {
		out[i] = n.Self()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Cmp(out[j].ID) < 0 })
	return out
}

// bruteForceSuccessor returns the first node in sorted (clockwise) order
// whose ID is >= key, wrapping to the smallest ID if none qualifies.
func bruteForceSuccessor(sorted []identifier.NodeInfo, key identifier.ID) identifier.NodeInfo {
	for _, n := range sorted {
		if n.ID.Cmp(key) >= 0 {
			return n
		}
	}
	return sorted[0]
}

func TestJoinBuildsConsistentRing(t *testing.T) {
	ring := newTestRing(t, 16)
	bootstrapAddr := ring.startBootstrap()

	const n = 4
	for i := 0; i < n; i++ {
		ring.join(bootstrapAddr)
	}

	sorted := ring.sortedByID()
	byID := make(map[string]*Node, n)
	for _, node := range ring.nodes {
		byID[node.Self().ID.String()] = node
	}

	for i, info := range sorted {
		node := byID[info.ID.String()]
		wantSucc := sorted[(i+1)%len(sorted)]
		wantPred := sorted[(i-1+len(sorted))%len(sorted)]
		if got := node.GetSuccessor(); !got.Equal(wantSucc) {
			t.Errorf("node %s: successor = %s, want %s", info.ID, got.ID, wantSucc.ID)
		}
		if got := node.GetPredecessor(); !got.Equal(wantPred) {
			t.Errorf("node %s: predecessor = %s, want %s", info.ID, got.ID, wantPred.ID)
		}
	}
}

func TestJoinFingerTableMatchesInvariant(t *testing.T) {
	ring := newTestRing(t, 16)
	bootstrapAddr := ring.startBootstrap()

	const n = 4
	for i := 0; i < n; i++ {
		ring.join(bootstrapAddr)
	}

	sorted := ring.sortedByID()
	m := ring.nodes[0].Fingers().M()

	for _, node := range ring.nodes {
		for i := 0; i < m; i++ {
			start := ring.space.FingerStart(node.Self().ID, i)
			want := bruteForceSuccessor(sorted, start)
			got := node.Fingers().Finger(i)
			if !got.Equal(want) {
				t.Errorf("node %s finger[%d]: got %s, want %s (start %s)",
					node.Self().ID, i, got.ID, want.ID, start)
			}
		}
	}
}

func TestFindSuccessorRoutesToCorrectOwner(t *testing.T) {
	ring := newTestRing(t, 16)
	bootstrapAddr := ring.startBootstrap()

	const n = 4
	for i := 0; i < n; i++ {
		ring.join(bootstrapAddr)
	}
	sorted := ring.sortedByID()

	keys := []identifier.ID{
		ring.space.FromUint64(0),
		ring.space.FromUint64(1),
		ring.space.FromUint64(12345),
		ring.space.FromUint64(65535),
	}

	for _, node := range ring.nodes {
		for _, key := range keys {
			want := bruteForceSuccessor(sorted, key)
			got, err := node.FindSuccessor(context.Background(), key)
			if err != nil {
				t.Fatalf("FindSuccessor(%s) from %s: %v", key, node.Self().ID, err)
			}
			if !got.Equal(want) {
				t.Errorf("FindSuccessor(%s) from %s = %s, want %s", key, node.Self().ID, got.ID, want.ID)
			}
		}
	}
}

func TestPutGetForwardAcrossRing(t *testing.T) {
	ring := newTestRing(t, 16)
	bootstrapAddr := ring.startBootstrap()

	const n = 4
	for i := 0; i < n; i++ {
		ring.join(bootstrapAddr)
	}

	ctx := context.Background()
	writer := ring.nodes[0]
	if err := writer.Put(ctx, "apple", "fruit"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	for _, reader := range ring.nodes {
		def, err := reader.Get(ctx, "apple")
		if err != nil {
			t.Fatalf("Get from %s: %v", reader.Self().ID, err)
		}
		if def != "fruit" {
			t.Fatalf("Get from %s returned %q, want %q", reader.Self().ID, def, "fruit")
		}
	}

	if _, err := ring.nodes[0].Get(ctx, "no-such-word"); !errors.Is(err, ErrWordNotFound) {
		t.Fatalf("expected ErrWordNotFound, got %v", err)
	}
	if err := ring.nodes[0].Put(ctx, "apple", "anything"); !errors.Is(err, ErrDuplicateWord) {
		t.Fatalf("expected ErrDuplicateWord, got %v", err)
	}
}

// With caching enabled, a forwarding hop keeps its own copy of the word
// and rejects re-insertion locally, without consulting the owner.
func TestPutWithCachingCachesAtForwardingHop(t *testing.T) {
	ring := newTestRing(t, 16)
	ring.caching = true
	bootstrapAddr := ring.startBootstrap()

	const n = 3
	for i := 0; i < n; i++ {
		ring.join(bootstrapAddr)
	}

	writer := ring.nodes[0]
	var word string
	for i := 0; ; i++ {
		candidate := fmt.Sprintf("cached-word-%d", i)
		if !writer.owns(ring.space.HashString(candidate)) {
			word = candidate
			break
		}
	}

	ctx := context.Background()
	if err := writer.Put(ctx, word, "def"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !writer.dict.has(word) {
		t.Fatal("forwarding node should keep a cached copy of the word")
	}
	if err := writer.Put(ctx, word, "other"); !errors.Is(err, ErrDuplicateWord) {
		t.Fatalf("expected ErrDuplicateWord from the caching hop, got %v", err)
	}

	for _, reader := range ring.nodes {
		def, err := reader.Get(ctx, word)
		if err != nil {
			t.Fatalf("Get from %s: %v", reader.Self().ID, err)
		}
		if def != "def" {
			t.Fatalf("Get from %s returned %q, want %q", reader.Self().ID, def, "def")
		}
	}
}

// A fresh ring's first member points every finger at itself; those
// degenerate entries span the whole ring and must yield to any other
// node the join protocol announces.
func TestUpdateFingerTableReplacesSelfFingers(t *testing.T) {
	space := testSpace(t, 8)
	self := identifier.NodeInfo{ID: space.FromUint64(10), Addr: "self:1"}
	other := identifier.NodeInfo{ID: space.FromUint64(200), Addr: "other:1"}
	pool := rpcclient.New(time.Second, 0)
	defer pool.Close()

	node := NewNode(self, space, false, pool, nil)
	node.Fingers().InitSingleNode()
	node.UpdatePredecessor(other) // as after the joiner's neighbour notifications

	ctx := context.Background()
	for i := 0; i < space.Bits; i++ {
		if err := node.UpdateFingerTable(ctx, other, i); err != nil {
			t.Fatalf("UpdateFingerTable(%d): %v", i, err)
		}
	}
	// In the two-node ring {10, 200} every finger start lands in
	// (10, 200], so every slot belongs to the other node.
	for i := 0; i < space.Bits; i++ {
		if got := node.Fingers().Finger(i); !got.Equal(other) {
			t.Errorf("finger[%d] = %s, want %s", i, got.ID, other.ID)
		}
	}
}
