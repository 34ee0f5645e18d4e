package quorumcoord

import (
	"context"
	"errors"

	quorumv1 "ringquorum/internal/api/quorum/v1"
	"ringquorum/internal/ctxutil"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Service adapts a Coordinator to the quorumv1.QuorumServer interface.
type Service struct {
	coord *Coordinator
}

// NewService wraps c as a quorumv1.QuorumServer.
func NewService(c *Coordinator) *Service {
	return &Service{coord: c}
}

func toStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrFileNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Errorf(codes.Internal, "quorumcoord: %v", err)
	}
}

func (s *Service) Write(ctx context.Context, req *quorumv1.WriteRequest) (*quorumv1.WriteResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	if err := s.coord.Write(ctx, req.FileName, req.Content); err != nil {
		return nil, toStatus(err)
	}
	return &quorumv1.WriteResponse{}, nil
}

func (s *Service) Read(ctx context.Context, req *quorumv1.ReadRequest) (*quorumv1.ReadResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	content, err := s.coord.Read(ctx, req.FileName)
	if err != nil {
		return nil, toStatus(err)
	}
	return &quorumv1.ReadResponse{Content: content}, nil
}

func (s *Service) ListFiles(ctx context.Context, _ *quorumv1.ListFilesRequest) (*quorumv1.ListFilesResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	files, err := s.coord.ListFiles(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	wire := make([]quorumv1.FileObject, len(files))
	for i, f := range files {
		wire[i] = quorumv1.FileObject{FileName: f.Name, Version: f.Version}
	}
	return &quorumv1.ListFilesResponse{Files: wire}, nil
}
