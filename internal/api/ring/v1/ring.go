// Package ringv1 declares the Ring Node RPC service: routing,
// membership, and the put/get data plane. Hand-wired against
// grpc.ServiceDesc and internal/rpccodec, same as bootstrapv1.
package ringv1

import (
	"context"

	"ringquorum/internal/rpccodec"

	"google.golang.org/grpc"
)

const serviceName = "ringquorum.ring.v1.Ring"

type NodeInfo struct {
	ID   []byte
	Addr string
}

type PutRequest struct {
	Word       string
	Definition string
}

type PutResponse struct{}

type GetRequest struct {
	Word string
}

type GetResponse struct {
	Definition string
}

type FindPredecessorRequest struct {
	ID []byte
}

type FindPredecessorResponse struct {
	Node NodeInfo
}

type FindSuccessorRequest struct {
	ID []byte
}

type FindSuccessorResponse struct {
	Node NodeInfo
}

type GetPredecessorRequest struct{}

type GetPredecessorResponse struct {
	Node NodeInfo
}

type GetSuccessorRequest struct{}

type GetSuccessorResponse struct {
	Node NodeInfo
}

type UpdatePredecessorRequest struct {
	Node NodeInfo
}

type UpdatePredecessorResponse struct{}

type UpdateSuccessorRequest struct {
	Node NodeInfo
}

type UpdateSuccessorResponse struct{}

type UpdateFingerTableRequest struct {
	Node  NodeInfo
	Index int32
}

type UpdateFingerTableResponse struct{}

// RingServer is the server API for the Ring service.
type RingServer interface {
	Put(context.Context, *PutRequest) (*PutResponse, error)
	Get(context.Context, *GetRequest) (*GetResponse, error)
	FindPredecessor(context.Context, *FindPredecessorRequest) (*FindPredecessorResponse, error)
	FindSuccessor(context.Context, *FindSuccessorRequest) (*FindSuccessorResponse, error)
	GetPredecessor(context.Context, *GetPredecessorRequest) (*GetPredecessorResponse, error)
	GetSuccessor(context.Context, *GetSuccessorRequest) (*GetSuccessorResponse, error)
	UpdatePredecessor(context.Context, *UpdatePredecessorRequest) (*UpdatePredecessorResponse, error)
	UpdateSuccessor(context.Context, *UpdateSuccessorRequest) (*UpdateSuccessorResponse, error)
	UpdateFingerTable(context.Context, *UpdateFingerTableRequest) (*UpdateFingerTableResponse, error)
}

// RegisterRingServer registers srv with a gRPC server or any other
// grpc.ServiceRegistrar.
func RegisterRingServer(s grpc.ServiceRegistrar, srv RingServer) {
	s.RegisterService(&serviceDesc, srv)
}

func handlePut(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PutRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RingServer).Put(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/Put"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RingServer).Put(ctx, req.(*PutRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleGet(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RingServer).Get(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/Get"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RingServer).Get(ctx, req.(*GetRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleFindPredecessor(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(FindPredecessorRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RingServer).FindPredecessor(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/FindPredecessor"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RingServer).FindPredecessor(ctx, req.(*FindPredecessorRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleFindSuccessor(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(FindSuccessorRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RingServer).FindSuccessor(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/FindSuccessor"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RingServer).FindSuccessor(ctx, req.(*FindSuccessorRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleGetPredecessor(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetPredecessorRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RingServer).GetPredecessor(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/GetPredecessor"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RingServer).GetPredecessor(ctx, req.(*GetPredecessorRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleGetSuccessor(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetSuccessorRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RingServer).GetSuccessor(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/GetSuccessor"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RingServer).GetSuccessor(ctx, req.(*GetSuccessorRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleUpdatePredecessor(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(UpdatePredecessorRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RingServer).UpdatePredecessor(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/UpdatePredecessor"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RingServer).UpdatePredecessor(ctx, req.(*UpdatePredecessorRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleUpdateSuccessor(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(UpdateSuccessorRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RingServer).UpdateSuccessor(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/UpdateSuccessor"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RingServer).UpdateSuccessor(ctx, req.(*UpdateSuccessorRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleUpdateFingerTable(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(UpdateFingerTableRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RingServer).UpdateFingerTable(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/UpdateFingerTable"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RingServer).UpdateFingerTable(ctx, req.(*UpdateFingerTableRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*RingServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Put", Handler: handlePut},
		{MethodName: "Get", Handler: handleGet},
		{MethodName: "FindPredecessor", Handler: handleFindPredecessor},
		{MethodName: "FindSuccessor", Handler: handleFindSuccessor},
		{MethodName: "GetPredecessor", Handler: handleGetPredecessor},
		{MethodName: "GetSuccessor", Handler: handleGetSuccessor},
		{MethodName: "UpdatePredecessor", Handler: handleUpdatePredecessor},
		{MethodName: "UpdateSuccessor", Handler: handleUpdateSuccessor},
		{MethodName: "UpdateFingerTable", Handler: handleUpdateFingerTable},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ringquorum/ring/v1",
}

// RingClient is the client API for the Ring service.
type RingClient interface {
	Put(ctx context.Context, in *PutRequest, opts ...grpc.CallOption) (*PutResponse, error)
	Get(ctx context.Context, in *GetRequest, opts ...grpc.CallOption) (*GetResponse, error)
	FindPredecessor(ctx context.Context, in *FindPredecessorRequest, opts ...grpc.CallOption) (*FindPredecessorResponse, error)
	FindSuccessor(ctx context.Context, in *FindSuccessorRequest, opts ...grpc.CallOption) (*FindSuccessorResponse, error)
	GetPredecessor(ctx context.Context, in *GetPredecessorRequest, opts ...grpc.CallOption) (*GetPredecessorResponse, error)
	GetSuccessor(ctx context.Context, in *GetSuccessorRequest, opts ...grpc.CallOption) (*GetSuccessorResponse, error)
	UpdatePredecessor(ctx context.Context, in *UpdatePredecessorRequest, opts ...grpc.CallOption) (*UpdatePredecessorResponse, error)
	UpdateSuccessor(ctx context.Context, in *UpdateSuccessorRequest, opts ...grpc.CallOption) (*UpdateSuccessorResponse, error)
	UpdateFingerTable(ctx context.Context, in *UpdateFingerTableRequest, opts ...grpc.CallOption) (*UpdateFingerTableResponse, error)
}

type ringClient struct {
	cc grpc.ClientConnInterface
}

// NewRingClient wraps cc with the Ring service's client API.
func NewRingClient(cc grpc.ClientConnInterface) RingClient {
	return &ringClient{cc: cc}
}

func callOpts(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(rpccodec.Name)}, opts...)
}

func (c *ringClient) Put(ctx context.Context, in *PutRequest, opts ...grpc.CallOption) (*PutResponse, error) {
	out := new(PutResponse)
	if err := c.cc.Invoke(ctx, serviceName+"/Put", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ringClient) Get(ctx context.Context, in *GetRequest, opts ...grpc.CallOption) (*GetResponse, error) {
	out := new(GetResponse)
	if err := c.cc.Invoke(ctx, serviceName+"/Get", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ringClient) FindPredecessor(ctx context.Context, in *FindPredecessorRequest, opts ...grpc.CallOption) (*FindPredecessorResponse, error) {
	out := new(FindPredecessorResponse)
	if err := c.cc.Invoke(ctx, serviceName+"/FindPredecessor", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ringClient) FindSuccessor(ctx context.Context, in *FindSuccessorRequest, opts ...grpc.CallOption) (*FindSuccessorResponse, error) {
	out := new(FindSuccessorResponse)
	if err := c.cc.Invoke(ctx, serviceName+"/FindSuccessor", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ringClient) GetPredecessor(ctx context.Context, in *GetPredecessorRequest, opts ...grpc.CallOption) (*GetPredecessorResponse, error) {
	out := new(GetPredecessorResponse)
	if err := c.cc.Invoke(ctx, serviceName+"/GetPredecessor", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ringClient) GetSuccessor(ctx context.Context, in *GetSuccessorRequest, opts ...grpc.CallOption) (*GetSuccessorResponse, error) {
	out := new(GetSuccessorResponse)
	if err := c.cc.Invoke(ctx, serviceName+"/GetSuccessor", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ringClient) UpdatePredecessor(ctx context.Context, in *UpdatePredecessorRequest, opts ...grpc.CallOption) (*UpdatePredecessorResponse, error) {
	out := new(UpdatePredecessorResponse)
	if err := c.cc.Invoke(ctx, serviceName+"/UpdatePredecessor", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ringClient) UpdateSuccessor(ctx context.Context, in *UpdateSuccessorRequest, opts ...grpc.CallOption) (*UpdateSuccessorResponse, error) {
	out := new(UpdateSuccessorResponse)
	if err := c.cc.Invoke(ctx, serviceName+"/UpdateSuccessor", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ringClient) UpdateFingerTable(ctx context.Context, in *UpdateFingerTableRequest, opts ...grpc.CallOption) (*UpdateFingerTableResponse, error) {
	out := new(UpdateFingerTableResponse)
	if err := c.cc.Invoke(ctx, serviceName+"/UpdateFingerTable", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}
