package bootstrapcoord

import (
	"context"
	"errors"

	bootstrapv1 "ringquorum/internal/api/bootstrap/v1"
	"ringquorum/internal/ctxutil"
	"ringquorum/internal/identifier"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Service adapts a Coordinator to the bootstrapv1.BootstrapServer interface.
type Service struct {
	coord *Coordinator
}

// NewService wraps c as a bootstrapv1.BootstrapServer.
func NewService(c *Coordinator) *Service {
	return &Service{coord: c}
}

func toWire(n identifier.NodeInfo) bootstrapv1.NodeInfo {
	return bootstrapv1.NodeInfo{ID: []byte(n.ID), Addr: n.Addr}
}

func (s *Service) GetJoinNode(ctx context.Context, req *bootstrapv1.GetJoinNodeRequest) (*bootstrapv1.GetJoinNodeResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	node, err := s.coord.GetJoinNode(req.Addr)
	if err != nil {
		if errors.Is(err, ErrBusy) {
			return nil, status.Error(codes.Unavailable, err.Error())
		}
		return nil, status.Errorf(codes.Internal, "bootstrapcoord: %v", err)
	}
	return &bootstrapv1.GetJoinNodeResponse{Node: toWire(node)}, nil
}

func (s *Service) PostJoin(ctx context.Context, _ *bootstrapv1.PostJoinRequest) (*bootstrapv1.PostJoinResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	s.coord.PostJoin()
	return &bootstrapv1.PostJoinResponse{}, nil
}

func (s *Service) GetNodeForClient(ctx context.Context, _ *bootstrapv1.GetNodeForClientRequest) (*bootstrapv1.GetNodeForClientResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	node, err := s.coord.GetNodeForClient()
	if err != nil {
		return nil, status.Errorf(codes.Unavailable, "bootstrapcoord: %v", err)
	}
	return &bootstrapv1.GetNodeForClientResponse{Node: toWire(node)}, nil
}
