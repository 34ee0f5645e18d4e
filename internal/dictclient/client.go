// Package dictclient implements the Dictionary Client: it asks the Bootstrap Coordinator for a member node and issues
// put/get/store/load commands against it, either reusing one connection
// for the whole run or reconnecting to a freshly chosen node per command.
package dictclient

import (
	"context"
	"fmt"
	"sync"

	bootstrapv1 "ringquorum/internal/api/bootstrap/v1"
	ringv1 "ringquorum/internal/api/ring/v1"
	"ringquorum/internal/logger"
	"ringquorum/internal/rpcclient"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Client talks to the ring through whichever node the Bootstrap
// Coordinator hands it.
type Client struct {
	pool            *rpcclient.Pool
	bootstrapAddr   string
	reuseConnection bool
	lgr             logger.Logger

	mu         sync.Mutex
	cachedRing string // non-empty once a node has been picked, when reusing
}

// New constructs a Client. When reuseConnection is true, the first
// picked ring node is kept for the whole run; otherwise every command
// reconnects to a freshly chosen node.
func New(pool *rpcclient.Pool, bootstrapAddr string, reuseConnection bool, lgr logger.Logger) *Client {
	if lgr == nil {
		lgr = logger.NopLogger{}
	}
	return &Client{pool: pool, bootstrapAddr: bootstrapAddr, reuseConnection: reuseConnection, lgr: lgr}
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
	default:
		return err
	}
}

// pickNode asks the Bootstrap Coordinator for a member node.
func (c *Client) pickNode(ctx context.Context) (string, error) {
	conn, err := c.pool.Conn(ctx, c.bootstrapAddr)
	if err != nil {
		return "", fmt.Errorf("dictclient: dialing bootstrap coordinator: %w", err)
	}
	resp, err := bootstrapv1.NewBootstrapClient(conn).GetNodeForClient(ctx, &bootstrapv1.GetNodeForClientRequest{})
	if err != nil {
		return "", fmt.Errorf("dictclient: get node for client: %w", err)
	}
	return resp.Node.Addr, nil
}

// ringStub returns a Ring client stub for the node this call should use,
// honoring the reuseConnection setting.
func (c *Client) ringStub(ctx context.Context) (ringv1.RingClient, error) {
	c.mu.Lock()
	addr := c.cachedRing
	reuse := c.reuseConnection
	c.mu.Unlock()

	if !reuse || addr == "" {
		picked, err := c.pickNode(ctx)
		if err != nil {
			return nil, err
		}
		addr = picked
		if reuse {
			c.mu.Lock()
			c.cachedRing = addr
			c.mu.Unlock()
		}
		c.lgr.Debug("dictclient: connected to ring node", logger.F("addr", addr))
	}

	conn, err := c.pool.Conn(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("dictclient: dialing ring node %s: %w", addr, err)
	}
	return ringv1.NewRingClient(conn), nil
}

// Put inserts word/definition into the DHT.
func (c *Client) Put(ctx context.Context, word, definition string) error {
	stub, err := c.ringStub(ctx)
	if err != nil {
		return err
	}
	_, err = stub.Put(ctx, &ringv1.PutRequest{Word: word, Definition: definition})
	return normalizeError(err)
}

// Get retrieves word's definition from the DHT.
func (c *Client) Get(ctx context.Context, word string) (string, error) {
	stub, err := c.ringStub(ctx)
	if err != nil {
		return "", err
	}
	resp, err := stub.Get(ctx, &ringv1.GetRequest{Word: word})
	if err != nil {
		return "", normalizeError(err)
	}
	return resp.Definition, nil
}
