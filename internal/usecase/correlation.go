package usecase

import "context"

type correlationKey struct{}

// WithCorrelationID attaches the caller's correlation id for logs and the
// interaction record.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}
