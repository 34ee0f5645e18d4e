// Package ctxutil provides small context helpers shared by every RPC
// handler in the module.
package ctxutil

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CheckContext reports whether ctx has already been canceled or its
// deadline has expired, translating either case into the matching gRPC
// status error. It returns nil when the context is still active.
//
// Handlers call this first, before doing any work, so that a client that
// has already given up does not pay for a lookup it will never see the
// result of.
func CheckContext(ctx context.Context) error {
	switch err := ctx.Err(); {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request was canceled by client")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request deadline exceeded")
	default:
		return nil
	}
}
