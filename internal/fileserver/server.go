package fileserver

import (
	"context"
	"fmt"

	quorumv1 "ringquorum/internal/api/quorum/v1"
	"ringquorum/internal/logger"
	"ringquorum/internal/rpcclient"
)

// Server is one member of the fixed file-server set. It answers the
// GetVersion/Update/Fetch/GetFiles RPCs the coordinator issues against
// its local Store, and forwards the client-facing Write/Read/ListFiles
// RPCs to the coordinator.
type Server struct {
	lgr   logger.Logger
	store *Store
	pool  *rpcclient.Pool
	coord string
}

// New constructs a Server backed by store, forwarding client requests
// to the coordinator at coordAddr.
func New(store *Store, pool *rpcclient.Pool, coordAddr string, lgr logger.Logger) *Server {
	if lgr == nil {
		lgr = logger.NopLogger{}
	}
	return &Server{lgr: lgr, store: store, pool: pool, coord: coordAddr}
}

func (s *Server) coordStub(ctx context.Context) (quorumv1.QuorumClient, error) {
	conn, err := s.pool.Conn(ctx, s.coord)
	if err != nil {
		return nil, fmt.Errorf("fileserver: dial coordinator: %w", err)
	}
	return quorumv1.NewQuorumClient(conn), nil
}

// Write forwards to the coordinator.
func (s *Server) Write(ctx context.Context, file, content string) error {
	stub, err := s.coordStub(ctx)
	if err != nil {
		return err
	}
	_, err = stub.Write(ctx, &quorumv1.WriteRequest{FileName: file, Content: content})
	return err
}

// Read forwards to the coordinator.
func (s *Server) Read(ctx context.Context, file string) (string, error) {
	stub, err := s.coordStub(ctx)
	if err != nil {
		return "", err
	}
	resp, err := stub.Read(ctx, &quorumv1.ReadRequest{FileName: file})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// ListFiles forwards to the coordinator.
func (s *Server) ListFiles(ctx context.Context) ([]FileVersion, error) {
	stub, err := s.coordStub(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := stub.ListFiles(ctx, &quorumv1.ListFilesRequest{})
	if err != nil {
		return nil, err
	}
	out := make([]FileVersion, len(resp.Files))
	for i, f := range resp.Files {
		out[i] = FileVersion{Name: f.FileName, Version: f.Version}
	}
	return out, nil
}

// GetVersion, Update, Fetch, and GetFiles are the coordinator-facing
// operations, answered directly from the local Store.
func (s *Server) GetVersion(file string) int64 { return s.store.GetVersion(file) }

func (s *Server) Update(file string, version int64, content string) error {
	return s.store.Update(file, version, content)
}

func (s *Server) Fetch(file string) (string, error) { return s.store.Fetch(file) }

func (s *Server) GetFiles() []FileVersion { return s.store.GetFiles() }
