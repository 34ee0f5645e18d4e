// Package fileserverv1 declares the File Server RPC service: the
// coordinator-facing version/update/fetch operations plus the
// client-forwarding write/read/listFiles trio a server exposes when a
// client happens to dial it directly. Hand-wired against
// grpc.ServiceDesc and internal/rpccodec, same as the sibling services.
package fileserverv1

import (
	"context"

	"ringquorum/internal/rpccodec"

	"google.golang.org/grpc"
)

const serviceName = "ringquorum.fileserver.v1.FileServer"

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

type GetVersionRequest struct {
	FileName string
}

type GetVersionResponse struct {
	Version int64
}

type UpdateRequest struct {
	FileName string
	Version  int64
	Content  string
}

type UpdateResponse struct{}

type FetchRequest struct {
	FileName string
}

type FetchResponse struct {
	Content string
}

type GetFilesRequest struct{}

type GetFilesResponse struct {
	Files []FileObject
}

// FileServerServer is the server API for the FileServer service.
type FileServerServer interface {
	Write(context.Context, *WriteRequest) (*WriteResponse, error)
	Read(context.Context, *ReadRequest) (*ReadResponse, error)
	ListFiles(context.Context, *ListFilesRequest) (*ListFilesResponse, error)
	GetVersion(context.Context, *GetVersionRequest) (*GetVersionResponse, error)
	Update(context.Context, *UpdateRequest) (*UpdateResponse, error)
	Fetch(context.Context, *FetchRequest) (*FetchResponse, error)
	GetFiles(context.Context, *GetFilesRequest) (*GetFilesResponse, error)
}

// RegisterFileServerServer registers srv with a gRPC server or any other
// grpc.ServiceRegistrar.
func RegisterFileServerServer(s grpc.ServiceRegistrar, srv FileServerServer) {
	s.RegisterService(&serviceDesc, srv)
}

func handleWrite(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(WriteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FileServerServer).Write(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/Write"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FileServerServer).Write(ctx, req.(*WriteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleRead(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ReadRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FileServerServer).Read(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/Read"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FileServerServer).Read(ctx, req.(*ReadRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleListFiles(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListFilesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FileServerServer).ListFiles(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/ListFiles"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FileServerServer).ListFiles(ctx, req.(*ListFilesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleGetVersion(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetVersionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FileServerServer).GetVersion(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/GetVersion"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FileServerServer).GetVersion(ctx, req.(*GetVersionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleUpdate(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(UpdateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FileServerServer).Update(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/Update"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FileServerServer).Update(ctx, req.(*UpdateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleFetch(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(FetchRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FileServerServer).Fetch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/Fetch"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FileServerServer).Fetch(ctx, req.(*FetchRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleGetFiles(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetFilesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FileServerServer).GetFiles(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/GetFiles"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FileServerServer).GetFiles(ctx, req.(*GetFilesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*FileServerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Write", Handler: handleWrite},
		{MethodName: "Read", Handler: handleRead},
		{MethodName: "ListFiles", Handler: handleListFiles},
		{MethodName: "GetVersion", Handler: handleGetVersion},
		{MethodName: "Update", Handler: handleUpdate},
		{MethodName: "Fetch", Handler: handleFetch},
		{MethodName: "GetFiles", Handler: handleGetFiles},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ringquorum/fileserver/v1",
}

// FileServerClient is the client API for the FileServer service.
type FileServerClient interface {
	Write(ctx context.Context, in *WriteRequest, opts ...grpc.CallOption) (*WriteResponse, error)
	Read(ctx context.Context, in *ReadRequest, opts ...grpc.CallOption) (*ReadResponse, error)
	ListFiles(ctx context.Context, in *ListFilesRequest, opts ...grpc.CallOption) (*ListFilesResponse, error)
	GetVersion(ctx context.Context, in *GetVersionRequest, opts ...grpc.CallOption) (*GetVersionResponse, error)
	Update(ctx context.Context, in *UpdateRequest, opts ...grpc.CallOption) (*UpdateResponse, error)
	Fetch(ctx context.Context, in *FetchRequest, opts ...grpc.CallOption) (*FetchResponse, error)
	GetFiles(ctx context.Context, in *GetFilesRequest, opts ...grpc.CallOption) (*GetFilesResponse, error)
}

type fileServerClient struct {
	cc grpc.ClientConnInterface
}

// NewFileServerClient wraps cc with the FileServer service's client API.
func NewFileServerClient(cc grpc.ClientConnInterface) FileServerClient {
	return &fileServerClient{cc: cc}
}

func callOpts(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(rpccodec.Name)}, opts...)
}

func (c *fileServerClient) Write(ctx context.Context, in *WriteRequest, opts ...grpc.CallOption) (*WriteResponse, error) {
	out := new(WriteResponse)
	if err := c.cc.Invoke(ctx, serviceName+"/Write", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fileServerClient) Read(ctx context.Context, in *ReadRequest, opts ...grpc.CallOption) (*ReadResponse, error) {
	out := new(ReadResponse)
	if err := c.cc.Invoke(ctx, serviceName+"/Read", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fileServerClient) ListFiles(ctx context.Context, in *ListFilesRequest, opts ...grpc.CallOption) (*ListFilesResponse, error) {
	out := new(ListFilesResponse)
	if err := c.cc.Invoke(ctx, serviceName+"/ListFiles", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fileServerClient) GetVersion(ctx context.Context, in *GetVersionRequest, opts ...grpc.CallOption) (*GetVersionResponse, error) {
	out := new(GetVersionResponse)
	if err := c.cc.Invoke(ctx, serviceName+"/GetVersion", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fileServerClient) Update(ctx context.Context, in *UpdateRequest, opts ...grpc.CallOption) (*UpdateResponse, error) {
	out := new(UpdateResponse)
	if err := c.cc.Invoke(ctx, serviceName+"/Update", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fileServerClient) Fetch(ctx context.Context, in *FetchRequest, opts ...grpc.CallOption) (*FetchResponse, error) {
	out := new(FetchResponse)
	if err := c.cc.Invoke(ctx, serviceName+"/Fetch", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fileServerClient) GetFiles(ctx context.Context, in *GetFilesRequest, opts ...grpc.CallOption) (*GetFilesResponse, error) {
	out := new(GetFilesResponse)
	if err := c.cc.Invoke(ctx, serviceName+"/GetFiles", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}
