package ringnode

import (
	"context"
	"errors"

	ringv1 "ringquorum/internal/api/ring/v1"
	"ringquorum/internal/ctxutil"
	"ringquorum/internal/identifier"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Service adapts a Node to the ringv1.RingServer interface, translating
// the node's sentinel errors into gRPC status codes.
type Service struct {
	node *Node
}

// NewService wraps n as a ringv1.RingServer.
func NewService(n *Node) *Service {
	return &Service{node: n}
}

func toStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrDuplicateWord):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, ErrWordNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, ErrRoutingLoop):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Errorf(codes.Internal, "ringnode: %v", err)
	}
}

func (s *Service) Put(ctx context.Context, req *ringv1.PutRequest) (*ringv1.PutResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	if err := s.node.Put(ctx, req.Word, req.Definition); err != nil {
		return nil, toStatus(err)
	}
	return &ringv1.PutResponse{}, nil
}

func (s *Service) Get(ctx context.Context, req *ringv1.GetRequest) (*ringv1.GetResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	def, err := s.node.Get(ctx, req.Word)
	if err != nil {
		return nil, toStatus(err)
	}
	return &ringv1.GetResponse{Definition: def}, nil
}

func (s *Service) FindPredecessor(ctx context.Context, req *ringv1.FindPredecessorRequest) (*ringv1.FindPredecessorResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	node, err := s.node.FindPredecessor(ctx, identifier.ID(req.ID))
	if err != nil {
		return nil, toStatus(err)
	}
	return &ringv1.FindPredecessorResponse{Node: toWire(node)}, nil
}

func (s *Service) FindSuccessor(ctx context.Context, req *ringv1.FindSuccessorRequest) (*ringv1.FindSuccessorResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	node, err := s.node.FindSuccessor(ctx, identifier.ID(req.ID))
	if err != nil {
		return nil, toStatus(err)
	}
	return &ringv1.FindSuccessorResponse{Node: toWire(node)}, nil
}

func (s *Service) GetPredecessor(ctx context.Context, _ *ringv1.GetPredecessorRequest) (*ringv1.GetPredecessorResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	return &ringv1.GetPredecessorResponse{Node: toWire(s.node.GetPredecessor())}, nil
}

func (s *Service) GetSuccessor(ctx context.Context, _ *ringv1.GetSuccessorRequest) (*ringv1.GetSuccessorResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	return &ringv1.GetSuccessorResponse{Node: toWire(s.node.GetSuccessor())}, nil
}

func (s *Service) UpdatePredecessor(ctx context.Context, req *ringv1.UpdatePredecessorRequest) (*ringv1.UpdatePredecessorResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	s.node.UpdatePredecessor(fromWire(req.Node))
	return &ringv1.UpdatePredecessorResponse{}, nil
}

func (s *Service) UpdateSuccessor(ctx context.Context, req *ringv1.UpdateSuccessorRequest) (*ringv1.UpdateSuccessorResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	s.node.UpdateSuccessor(fromWire(req.Node))
	return &ringv1.UpdateSuccessorResponse{}, nil
}

func (s *Service) UpdateFingerTable(ctx context.Context, req *ringv1.UpdateFingerTableRequest) (*ringv1.UpdateFingerTableResponse, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	if err := s.node.UpdateFingerTable(ctx, fromWire(req.Node), int(req.Index)); err != nil {
		return nil, toStatus(err)
	}
	return &ringv1.UpdateFingerTableResponse{}, nil
}
