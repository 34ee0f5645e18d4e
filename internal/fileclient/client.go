// Package fileclient implements the File Client: it runs a scripted
// list of write/read/list/sleep commands against a randomly chosen
// member of a fixed file-server set.
package fileclient

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	fileserverv1 "ringquorum/internal/api/fileserver/v1"
	"ringquorum/internal/logger"
	"ringquorum/internal/rpcclient"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Client issues FileServer RPCs against a randomly chosen server from
// a fixed set, picking afresh for every call.
type Client struct {
	pool    *rpcclient.Pool
	servers []string
	lgr     logger.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// New constructs a Client over servers, the fixed set shared by every
// file server and the coordinator.
func New(pool *rpcclient.Pool, servers []string, lgr logger.Logger) *Client {
	if lgr == nil {
		lgr = logger.NopLogger{}
	}
	return &Client{
		pool:    pool,
		servers: servers,
		lgr:     lgr,
		rng:     rand.New(rand.NewSource(rand.Int63())),
	}
}

func normalizeError(err error) error {
	if err == nil {
		return nil
	}
	if st, ok := status.FromError(err); ok && st.Code() == codes.NotFound {
		return ErrFileNotFound
	}
	return err
}

func (c *Client) pickServer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.servers[c.rng.Intn(len(c.servers))]
}

func (c *Client) stub(ctx context.Context) (fileserverv1.FileServerClient, string, error) {
	addr := c.pickServer()
	conn, err := c.pool.Conn(ctx, addr)
	if err != nil {
		return nil, addr, fmt.Errorf("fileclient: dialing %s: %w", addr, err)
	}
	return fileserverv1.NewFileServerClient(conn), addr, nil
}

// Write sends content to file via a randomly chosen server.
func (c *Client) Write(ctx context.Context, file, content string) error {
	stub, addr, err := c.stub(ctx)
	if err != nil {
		return err
	}
	_, err = stub.Write(ctx, &fileserverv1.WriteRequest{FileName: file, Content: content})
	if err != nil {
		return fmt.Errorf("fileclient: write via %s: %w", addr, normalizeError(err))
	}
	return nil
}

// Read returns file's contents via a randomly chosen server.
func (c *Client) Read(ctx context.Context, file string) (string, error) {
	stub, addr, err := c.stub(ctx)
	if err != nil {
		return "", err
	}
	resp, err := stub.Read(ctx, &fileserverv1.ReadRequest{FileName: file})
	if err != nil {
		return "", fmt.Errorf("fileclient: read via %s: %w", addr, normalizeError(err))
	}
	return resp.Content, nil
}

// ListEntry is one (name, version) pair reported by ListFiles.
type ListEntry struct {
	Name    string
	Version int64
}

// List returns every file and its current version via a randomly
// chosen server.
func (c *Client) List(ctx context.Context) ([]ListEntry, error) {
	stub, addr, err := c.stub(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := stub.ListFiles(ctx, &fileserverv1.ListFilesRequest{})
	if err != nil {
		return nil, fmt.Errorf("fileclient: list via %s: %w", addr, err)
	}
	out := make([]ListEntry, len(resp.Files))
	for i, f := range resp.Files {
		out[i] = ListEntry{Name: f.FileName, Version: f.Version}
	}
	return out, nil
}

// Sleep blocks for d, honoring ctx cancellation.
func (c *Client) Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
