package bootstrapcoord

import (
	"errors"
	"testing"

	"ringquorum/internal/identifier"
)

func testSpace(t *testing.T) identifier.Space {
	t.Helper()
	sp, err := identifier.NewSpace(8)
	if err != nil {
		t.Fatalf("NewSpace: %v", err)
	}
	return sp
}

func TestGetJoinNodeEmptyRingReturnsSentinel(t *testing.T) {
	c := New(testSpace(t), nil)
	node, err := c.GetJoinNode("10.0.0.1:5000")
	if err != nil {
		t.Fatalf("GetJoinNode: %v", err)
	}
	if !node.IsZero() {
		t.Fatalf("expected sentinel zero NodeInfo, got %+v", node)
	}
}

func TestGetJoinNodeBusyUntilPostJoin(t *testing.T) {
	c := New(testSpace(t), nil)
	if _, err := c.GetJoinNode("10.0.0.1:5000"); err != nil {
		t.Fatalf("first GetJoinNode: %v", err)
	}
	if _, err := c.GetJoinNode("10.0.0.2:5000"); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy while token held, got %v", err)
	}
	c.PostJoin()
	if _, err := c.GetJoinNode("10.0.0.3:5000"); err != nil {
		t.Fatalf("GetJoinNode after PostJoin: %v", err)
	}
}

func TestGetJoinNodeReturnsExistingMember(t *testing.T) {
	c := New(testSpace(t), nil)
	if _, err := c.GetJoinNode("10.0.0.1:5000"); err != nil {
		t.Fatalf("seed join: %v", err)
	}
	c.PostJoin()

	target, err := c.GetJoinNode("10.0.0.2:5000")
	if err != nil {
		t.Fatalf("GetJoinNode: %v", err)
	}
	if target.Addr != "10.0.0.1:5000" {
		t.Fatalf("expected existing member 10.0.0.1:5000, got %+v", target)
	}
	c.PostJoin()
}

func TestGetNodeForClientRequiresAtLeastOneNode(t *testing.T) {
	c := New(testSpace(t), nil)
	if _, err := c.GetNodeForClient(); err == nil {
		t.Fatal("expected error on empty node list")
	}
	if _, err := c.GetJoinNode("10.0.0.1:5000"); err != nil {
		t.Fatalf("GetJoinNode: %v", err)
	}
	c.PostJoin()
	node, err := c.GetNodeForClient()
	if err != nil {
		t.Fatalf("GetNodeForClient: %v", err)
	}
	if node.Addr != "10.0.0.1:5000" {
		t.Fatalf("unexpected node: %+v", node)
	}
}

func TestPostJoinWithoutHeldTokenIsNoOp(t *testing.T) {
	c := New(testSpace(t), nil)
	c.PostJoin() // no ownership check: must not panic or block
	if _, err := c.GetJoinNode("10.0.0.1:5000"); err != nil {
		t.Fatalf("GetJoinNode after spurious PostJoin: %v", err)
	}
}
