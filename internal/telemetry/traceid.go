package telemetry

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

type traceKey struct{}

// GenerateTraceID builds a globally unique trace ID of the form
// "<instanceID>-<ULID>", used to correlate the log lines of a single
// quorum operation.
func GenerateTraceID(instanceID string) string {
	t := time.Now().UTC()
	entropy := ulid.Monotonic(rand.New(rand.NewSource(t.UnixNano())), 0)
	id := ulid.MustNew(ulid.Timestamp(t), entropy)
	return fmt.Sprintf("%s-%s", instanceID, id.String())
}

// AttachTraceID stores a freshly generated trace ID in ctx and returns
// both the new context and the trace ID.
func AttachTraceID(ctx context.Context, instanceID string) (context.Context, string) {
	id := GenerateTraceID(instanceID)
	return context.WithValue(ctx, traceKey{}, id), id
}

// TraceIDFromContext returns the trace ID carried in ctx, or "" if none.
func TraceIDFromContext(ctx context.Context) string {
	if v := ctx.Value(traceKey{}); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// EnsureTraceID returns ctx unchanged if it already carries a trace ID,
// otherwise attaches a new one derived from instanceID.
func EnsureTraceID(ctx context.Context, instanceID string) context.Context {
	if TraceIDFromContext(ctx) == "" {
		ctx, _ = AttachTraceID(ctx, instanceID)
	}
	return ctx
}
