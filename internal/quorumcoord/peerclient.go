package quorumcoord

import (
	"context"

	fileserverv1 "ringquorum/internal/api/fileserver/v1"
	"ringquorum/internal/rpcclient"
)

// FileObject is a (name, version) pair, the domain form of a directory entry.
type FileObject struct {
	Name    string
	Version int64
}

// peerClient issues FileServer RPCs against individual servers in the
// fixed server set.
type peerClient struct {
	pool *rpcclient.Pool
}

func newPeerClient(pool *rpcclient.Pool) *peerClient {
	return &peerClient{pool: pool}
}

func (c *peerClient) stub(ctx context.Context, addr string) (fileserverv1.FileServerClient, error) {
	conn, err := c.pool.Conn(ctx, addr)
	if err != nil {
		return nil, err
	}
	return fileserverv1.NewFileServerClient(conn), nil
}

func (c *peerClient) GetVersion(ctx context.Context, addr, file string) (int64, error) {
	stub, err := c.stub(ctx, addr)
	if err != nil {
		return 0, err
	}
	resp, err := stub.GetVersion(ctx, &fileserverv1.GetVersionRequest{FileName: file})
	if err != nil {
		return 0, err
	}
	return resp.Version, nil
}

func (c *peerClient) Update(ctx context.Context, addr, file string, version int64, content string) error {
	stub, err := c.stub(ctx, addr)
	if err != nil {
		return err
	}
	_, err = stub.Update(ctx, &fileserverv1.UpdateRequest{FileName: file, Version: version, Content: content})
	return err
}

func (c *peerClient) Fetch(ctx context.Context, addr, file string) (string, error) {
	stub, err := c.stub(ctx, addr)
	if err != nil {
		return "", err
	}
	resp, err := stub.Fetch(ctx, &fileserverv1.FetchRequest{FileName: file})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (c *peerClient) GetFiles(ctx context.Context, addr string) ([]FileObject, error) {
	stub, err := c.stub(ctx, addr)
	if err != nil {
		return nil, err
	}
	resp, err := stub.GetFiles(ctx, &fileserverv1.GetFilesRequest{})
	if err != nil {
		return nil, err
	}
	out := make([]FileObject, len(resp.Files))
	for i, f := range resp.Files {
		out[i] = FileObject{Name: f.FileName, Version: f.Version}
	}
	return out, nil
}
