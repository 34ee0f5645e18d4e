// Package hoptrace creates spans for the multi-hop RPC methods that
// matter most for latency debugging: ring routing hops. Unlike tracing
// every RPC, it only instruments
// methods whose name contains one of a configured set of substrings,
// keeping the stdout exporter's output readable in a multi-node ring.
package hoptrace

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

const (
	hopMetaKey = "x-ringquorum-hop"
	tracerName = "ringquorum/hoptrace"
)

var tracer = otel.Tracer(tracerName)

type hopKey struct{}

// withHop marks ctx as part of a hop chain, both in-process (so this
// process's own outgoing calls see it) and on the outgoing metadata (so
// the next process's server interceptor sees it).
func withHop(ctx context.Context) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	md.Set(hopMetaKey, "true")
	return metadata.NewOutgoingContext(context.WithValue(ctx, hopKey{}, true), md)
}

func isHop(ctx context.Context) bool {
	if v, ok := ctx.Value(hopKey{}).(bool); ok && v {
		return true
	}
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return false
	}
	values := md.Get(hopMetaKey)
	return len(values) > 0 && values[0] == "true"
}

func matches(method string, substrings []string) bool {
	for _, s := range substrings {
		if strings.Contains(method, s) {
			return true
		}
	}
	return false
}

// ServerInterceptor creates a span for any incoming RPC whose method name
// contains one of methodSubstrings, or that is already part of a traced
// hop chain.
func ServerInterceptor(methodSubstrings ...string) grpc.UnaryServerInterceptor {
	propagator := otel.GetTextMapPropagator()
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			ctx = propagator.Extract(ctx, metadataCarrier(md))
		}
		if matches(info.FullMethod, methodSubstrings) || isHop(ctx) {
			ctx = withHop(ctx)
			ctx, span := tracer.Start(ctx, info.FullMethod, trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()
			return handler(ctx, req)
		}
		return handler(ctx, req)
	}
}

// ClientInterceptor propagates the hop flag and creates client-side spans
// for outgoing RPCs that are part of a traced hop chain.
func ClientInterceptor() grpc.UnaryClientInterceptor {
	propagator := otel.GetTextMapPropagator()
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if !isHop(ctx) {
			return invoker(ctx, method, req, reply, cc, opts...)
		}
		ctx = withHop(ctx)
		ctx, span := tracer.Start(ctx, method, trace.WithSpanKind(trace.SpanKindClient))
		defer span.End()

		md, _ := metadata.FromOutgoingContext(ctx)
		md = md.Copy()
		propagator.Inject(ctx, metadataCarrier(md))
		ctx = metadata.NewOutgoingContext(ctx, md)

		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

type metadataCarrier metadata.MD

func (mc metadataCarrier) Get(key string) string {
	vals := metadata.MD(mc).Get(key)
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

func (mc metadataCarrier) Set(key, value string) {
	metadata.MD(mc).Set(key, value)
}

func (mc metadataCarrier) Keys() []string {
	out := make([]string, 0, len(mc))
	for k := range mc {
		out = append(out, k)
	}
	return out
}
