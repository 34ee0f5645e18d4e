package ringnode

import (
	"context"

	ringv1 "ringquorum/internal/api/ring/v1"
	"ringquorum/internal/identifier"
	"ringquorum/internal/rpcclient"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// peerClient issues Ring RPCs against other ring nodes, normalizing
// grpc-status errors back into the sentinel errors handlers expect to
// see.
type peerClient struct {
	pool *rpcclient.Pool
}

func newPeerClient(pool *rpcclient.Pool) *peerClient {
	return &peerClient{pool: pool}
}

func (c *peerClient) stub(ctx context.Context, addr string) (ringv1.RingClient, error) {
	conn, err := c.pool.Conn(ctx, addr)
	if err != nil {
		return nil, err
	}
	return ringv1.NewRingClient(conn), nil
}

func toWire(n identifier.NodeInfo) ringv1.NodeInfo {
	return ringv1.NodeInfo{ID: []byte(n.ID), Addr: n.Addr}
}

func fromWire(n ringv1.NodeInfo) identifier.NodeInfo {
	if len(n.ID) == 0 && n.Addr == "" {
		return identifier.NodeInfo{}
	}
	return identifier.NodeInfo{ID: identifier.ID(n.ID), Addr: n.Addr}
}

func normalizeError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.AlreadyExists:
		return ErrDuplicateWord
	case codes.NotFound:
		return ErrWordNotFound
	case codes.FailedPrecondition:
		return ErrRoutingLoop
	default:
		return err
	}
}

func (c *peerClient) FindPredecessor(ctx context.Context, addr string, key identifier.ID) (identifier.NodeInfo, error) {
	stub, err := c.stub(ctx, addr)
	if err != nil {
		return identifier.NodeInfo{}, err
	}
	resp, err := stub.FindPredecessor(ctx, &ringv1.FindPredecessorRequest{ID: []byte(key)})
	if err != nil {
		return identifier.NodeInfo{}, normalizeError(err)
	}
	return fromWire(resp.Node), nil
}

func (c *peerClient) FindSuccessor(ctx context.Context, addr string, key identifier.ID) (identifier.NodeInfo, error) {
	stub, err := c.stub(ctx, addr)
	if err != nil {
		return identifier.NodeInfo{}, err
	}
	resp, err := stub.FindSuccessor(ctx, &ringv1.FindSuccessorRequest{ID: []byte(key)})
	if err != nil {
		return identifier.NodeInfo{}, normalizeError(err)
	}
	return fromWire(resp.Node), nil
}

func (c *peerClient) GetPredecessor(ctx context.Context, addr string) (identifier.NodeInfo, error) {
	stub, err := c.stub(ctx, addr)
	if err != nil {
		return identifier.NodeInfo{}, err
	}
	resp, err := stub.GetPredecessor(ctx, &ringv1.GetPredecessorRequest{})
	if err != nil {
		return identifier.NodeInfo{}, normalizeError(err)
	}
	return fromWire(resp.Node), nil
}

func (c *peerClient) GetSuccessor(ctx context.Context, addr string) (identifier.NodeInfo, error) {
	stub, err := c.stub(ctx, addr)
	if err != nil {
		return identifier.NodeInfo{}, err
	}
	resp, err := stub.GetSuccessor(ctx, &ringv1.GetSuccessorRequest{})
	if err != nil {
		return identifier.NodeInfo{}, normalizeError(err)
	}
	return fromWire(resp.Node), nil
}

func (c *peerClient) UpdatePredecessor(ctx context.Context, addr string, n identifier.NodeInfo) error {
	stub, err := c.stub(ctx, addr)
	if err != nil {
		return err
	}
	_, err = stub.UpdatePredecessor(ctx, &ringv1.UpdatePredecessorRequest{Node: toWire(n)})
	return normalizeError(err)
}

func (c *peerClient) UpdateSuccessor(ctx context.Context, addr string, n identifier.NodeInfo) error {
	stub, err := c.stub(ctx, addr)
	if err != nil {
		return err
	}
	_, err = stub.UpdateSuccessor(ctx, &ringv1.UpdateSuccessorRequest{Node: toWire(n)})
	return normalizeError(err)
}

func (c *peerClient) UpdateFingerTable(ctx context.Context, addr string, n identifier.NodeInfo, index int) error {
	stub, err := c.stub(ctx, addr)
	if err != nil {
		return err
	}
	_, err = stub.UpdateFingerTable(ctx, &ringv1.UpdateFingerTableRequest{Node: toWire(n), Index: int32(index)})
	return normalizeError(err)
}

func (c *peerClient) Put(ctx context.Context, addr, word, definition string) error {
	stub, err := c.stub(ctx, addr)
	if err != nil {
		return err
	}
	_, err = stub.Put(ctx, &ringv1.PutRequest{Word: word, Definition: definition})
	return normalizeError(err)
}

func (c *peerClient) Get(ctx context.Context, addr, word string) (string, error) {
	stub, err := c.stub(ctx, addr)
	if err != nil {
		return "", err
	}
	resp, err := stub.Get(ctx, &ringv1.GetRequest{Word: word})
	if err != nil {
		return "", normalizeError(err)
	}
	return resp.Definition, nil
}
