// Package quorumv1 declares the Quorum Coordinator RPC service: the
// client-facing write/read/listFiles operations. Hand-wired against
// grpc.ServiceDesc and internal/rpccodec, same as bootstrapv1/ringv1.
package quorumv1

import (
	"context"

	"ringquorum/internal/rpccodec"

	"google.golang.org/grpc"
)

const serviceName = "ringquorum.quorum.v1.Quorum"

// FileObject is a (name, version) pair, the wire form of a directory entry.
type FileObject struct {
	FileName string
	Version  int64
}

type WriteRequest struct {
	FileName string
	Content  string
}

type WriteResponse struct{}

type ReadRequest struct {
	FileName string
}

type ReadResponse struct {
	Content string
}

type ListFilesRequest struct{}

type ListFilesResponse struct {
	Files []FileObject
}

// QuorumServer is the server API for the Quorum service.
type QuorumServer interface {
	Write(context.Context, *WriteRequest) (*WriteResponse, error)
	Read(context.Context, *ReadRequest) (*ReadResponse, error)
	ListFiles(context.Context, *ListFilesRequest) (*ListFilesResponse, error)
}

// RegisterQuorumServer registers srv with a gRPC server or any other
// grpc.ServiceRegistrar.
func RegisterQuorumServer(s grpc.ServiceRegistrar, srv QuorumServer) {
	s.RegisterService(&serviceDesc, srv)
}

func handleWrite(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(WriteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(QuorumServer).Write(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/Write"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(QuorumServer).Write(ctx, req.(*WriteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleRead(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ReadRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(QuorumServer).Read(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/Read"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(QuorumServer).Read(ctx, req.(*ReadRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleListFiles(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListFilesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(QuorumServer).ListFiles(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/ListFiles"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(QuorumServer).ListFiles(ctx, req.(*ListFilesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*QuorumServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Write", Handler: handleWrite},
		{MethodName: "Read", Handler: handleRead},
		{MethodName: "ListFiles", Handler: handleListFiles},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ringquorum/quorum/v1",
}

// QuorumClient is the client API for the Quorum service.
type QuorumClient interface {
	Write(ctx context.Context, in *WriteRequest, opts ...grpc.CallOption) (*WriteResponse, error)
	Read(ctx context.Context, in *ReadRequest, opts ...grpc.CallOption) (*ReadResponse, error)
	ListFiles(ctx context.Context, in *ListFilesRequest, opts ...grpc.CallOption) (*ListFilesResponse, error)
}

type quorumClient struct {
	cc grpc.ClientConnInterface
}

// NewQuorumClient wraps cc with the Quorum service's client API.
func NewQuorumClient(cc grpc.ClientConnInterface) QuorumClient {
	return &quorumClient{cc: cc}
}

func callOpts(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(rpccodec.Name)}, opts...)
}

func (c *quorumClient) Write(ctx context.Context, in *WriteRequest, opts ...grpc.CallOption) (*WriteResponse, error) {
	out := new(WriteResponse)
	if err := c.cc.Invoke(ctx, serviceName+"/Write", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *quorumClient) Read(ctx context.Context, in *ReadRequest, opts ...grpc.CallOption) (*ReadResponse, error) {
	out := new(ReadResponse)
	if err := c.cc.Invoke(ctx, serviceName+"/Read", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *quorumClient) ListFiles(ctx context.Context, in *ListFilesRequest, opts ...grpc.CallOption) (*ListFilesResponse, error) {
	out := new(ListFilesResponse)
	if err := c.cc.Invoke(ctx, serviceName+"/ListFiles", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}
