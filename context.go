package authflow

import "context"

type surfaceContextKey struct{}
type correlationIDContextKey struct{}

// WithSurface attaches a form-instance identifier to ctx. The Engine uses
// it to enforce the one-exchange-per-surface rule: a second submission for
// the same surface while an exchange is in flight fails with
// [ErrExchangeInFlight]. Flows dispatched without a surface are not gated.
func WithSurface(ctx context.Context, surface string) context.Context {
	return context.WithValue(ctx, surfaceContextKey{}, surface)
}

// WithCorrelationID attaches a caller-chosen correlation ID to ctx. It is
// propagated on the configured correlation header and echoed in audit
// events. When absent, a uuid is generated per exchange.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDContextKey{}, id)
}

func surfaceFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	surface, _ := ctx.Value(surfaceContextKey{}).(string)
	return surface
}

func correlationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(correlationIDContextKey{}).(string)
	return id
}
