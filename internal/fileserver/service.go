package fileserver

import (
	"context"
	"errors"

	fileserverv1 "ringquorum/internal/api/fileserver/v1"
	"ringquorum/internal/ctxutil"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Service adapts a Server to the fileserverv1.FileServerServer interface.
type Service struct {
	srv *Server
}

// NewService wraps srv as a fileserverv1.FileServerServer.
func NewService(srv *Server) *Service {
	return &Service{srv: srv}
}

// toStatus adapts an error from one of Server's client-forwarding calls
// (Write/Read/ListFiles) to the status this handler returns. Those calls
// already reach the Coordinator over RPC, so an error coming back is
// ordinarily already a *status.Error carrying the code the Coordinator's
// own service chose (e.g. codes.NotFound for ErrFileNotFound) — that code
// must be preserved, not flattened into codes.Internal, or a client
// reading a missing file through a File Server would see a generic error
// instead of FileNotFound. Only an error that never went through status
// (a local dial/transport failure) gets wrapped as Internal here.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Errorf(codes.Internal, "fileserver: %v", err)
}

func (s *Service) Write(ctx context.Context, req *fileserverv1.WriteRequest) (*fileserverv1.WriteResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	if err := s.srv.Write(ctx, req.FileName, req.Content); err != nil {
		return nil, toStatus(err)
	}
	return &fileserverv1.WriteResponse{}, nil
}

func (s *Service) Read(ctx context.Context, req *fileserverv1.ReadRequest) (*fileserverv1.ReadResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	content, err := s.srv.Read(ctx, req.FileName)
	if err != nil {
		return nil, toStatus(err)
	}
	return &fileserverv1.ReadResponse{Content: content}, nil
}

func (s *Service) ListFiles(ctx context.Context, _ *fileserverv1.ListFilesRequest) (*fileserverv1.ListFilesResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	files, err := s.srv.ListFiles(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	wire := make([]fileserverv1.FileObject, len(files))
	for i, f := range files {
		wire[i] = fileserverv1.FileObject{FileName: f.Name, Version: f.Version}
	}
	return &fileserverv1.ListFilesResponse{Files: wire}, nil
}

func (s *Service) GetVersion(ctx context.Context, req *fileserverv1.GetVersionRequest) (*fileserverv1.GetVersionResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	return &fileserverv1.GetVersionResponse{Version: s.srv.GetVersion(req.FileName)}, nil
}

func (s *Service) Update(ctx context.Context, req *fileserverv1.UpdateRequest) (*fileserverv1.UpdateResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	if err := s.srv.Update(req.FileName, req.Version, req.Content); err != nil {
		return nil, status.Errorf(codes.Internal, "fileserver: update: %v", err)
	}
	return &fileserverv1.UpdateResponse{}, nil
}

func (s *Service) Fetch(ctx context.Context, req *fileserverv1.FetchRequest) (*fileserverv1.FetchResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	content, err := s.srv.Fetch(req.FileName)
	switch {
	case err == nil:
		return &fileserverv1.FetchResponse{Content: content}, nil
	case errors.Is(err, ErrFileNotFound):
		return nil, status.Error(codes.NotFound, err.Error())
	default:
		return nil, status.Errorf(codes.Internal, "fileserver: fetch: %v", err)
	}
}

func (s *Service) GetFiles(ctx context.Context, _ *fileserverv1.GetFilesRequest) (*fileserverv1.GetFilesResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	files := s.srv.GetFiles()
	wire := make([]fileserverv1.FileObject, len(files))
	for i, f := range files {
		wire[i] = fileserverv1.FileObject{FileName: f.Name, Version: f.Version}
	}
	return &fileserverv1.GetFilesResponse{Files: wire}, nil
}
