// Package bootstrapv1 declares the Bootstrap Coordinator RPC service.
// There is no .proto file behind it: messages are plain gob-encodable
// structs and the service is wired by hand against grpc.ServiceDesc,
// using internal/rpccodec instead of protobuf's generated marshalers.
package bootstrapv1

import (
	"context"

	"ringquorum/internal/rpccodec"

	"google.golang.org/grpc"
)

const serviceName = "ringquorum.bootstrap.v1.Bootstrap"

// NodeInfo is the wire form of a ring participant. The zero value
// (nil ID, empty Addr) is the sentinel "ring is empty" response.
type NodeInfo struct {
	ID   []byte
	Addr string
}

type GetJoinNodeRequest struct {
	Addr string
}

type GetJoinNodeResponse struct {
	Node NodeInfo
}

type PostJoinRequest struct{}

type PostJoinResponse struct{}

type GetNodeForClientRequest struct{}

type GetNodeForClientResponse struct {
	Node NodeInfo
}

// BootstrapServer is the server API for the Bootstrap service.
type BootstrapServer interface {
	GetJoinNode(context.Context, *GetJoinNodeRequest) (*GetJoinNodeResponse, error)
	PostJoin(context.Context, *PostJoinRequest) (*PostJoinResponse, error)
	GetNodeForClient(context.Context, *GetNodeForClientRequest) (*GetNodeForClientResponse, error)
}

// RegisterBootstrapServer registers srv with a gRPC server or any other
// grpc.ServiceRegistrar.
func RegisterBootstrapServer(s grpc.ServiceRegistrar, srv BootstrapServer) {
	s.RegisterService(&serviceDesc, srv)
}

func handleGetJoinNode(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetJoinNodeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BootstrapServer).GetJoinNode(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/GetJoinNode"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BootstrapServer).GetJoinNode(ctx, req.(*GetJoinNodeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handlePostJoin(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PostJoinRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BootstrapServer).PostJoin(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/PostJoin"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BootstrapServer).PostJoin(ctx, req.(*PostJoinRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleGetNodeForClient(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetNodeForClientRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BootstrapServer).GetNodeForClient(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/GetNodeForClient"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BootstrapServer).GetNodeForClient(ctx, req.(*GetNodeForClientRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*BootstrapServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetJoinNode", Handler: handleGetJoinNode},
		{MethodName: "PostJoin", Handler: handlePostJoin},
		{MethodName: "GetNodeForClient", Handler: handleGetNodeForClient},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ringquorum/bootstrap/v1",
}

// BootstrapClient is the client API for the Bootstrap service.
type BootstrapClient interface {
	GetJoinNode(ctx context.Context, in *GetJoinNodeRequest, opts ...grpc.CallOption) (*GetJoinNodeResponse, error)
	PostJoin(ctx context.Context, in *PostJoinRequest, opts ...grpc.CallOption) (*PostJoinResponse, error)
	GetNodeForClient(ctx context.Context, in *GetNodeForClientRequest, opts ...grpc.CallOption) (*GetNodeForClientResponse, error)
}

type bootstrapClient struct {
	cc grpc.ClientConnInterface
}

// NewBootstrapClient wraps cc with the Bootstrap service's client API.
func NewBootstrapClient(cc grpc.ClientConnInterface) BootstrapClient {
	return &bootstrapClient{cc: cc}
}

func callOpts(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(rpccodec.Name)}, opts...)
}

func (c *bootstrapClient) GetJoinNode(ctx context.Context, in *GetJoinNodeRequest, opts ...grpc.CallOption) (*GetJoinNodeResponse, error) {
	out := new(GetJoinNodeResponse)
	if err := c.cc.Invoke(ctx, serviceName+"/GetJoinNode", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *bootstrapClient) PostJoin(ctx context.Context, in *PostJoinRequest, opts ...grpc.CallOption) (*PostJoinResponse, error) {
	out := new(PostJoinResponse)
	if err := c.cc.Invoke(ctx, serviceName+"/PostJoin", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *bootstrapClient) GetNodeForClient(ctx context.Context, in *GetNodeForClientRequest, opts ...grpc.CallOption) (*GetNodeForClientResponse, error) {
	out := new(GetNodeForClientResponse)
	if err := c.cc.Invoke(ctx, serviceName+"/GetNodeForClient", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}
