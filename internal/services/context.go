package services

import "context"

type (
	jobIDKey     struct{}
	operationKey struct{}
	requestIDKey struct{}
)

// WithJobID records the rip job a rename step is working on.
func WithJobID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, jobIDKey{}, id)
}

// JobIDFromContext returns the job recorded by WithJobID.
func JobIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(jobIDKey{}).(int64)
	return id, ok
}

// WithOperation records the batch rename stage (analyze, preview, execute).
// A blank operation leaves ctx unchanged.
func WithOperation(ctx context.Context, operation string) context.Context {
	return withString(ctx, operationKey{}, operation)
}

// OperationFromContext returns the stage recorded by WithOperation.
func OperationFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, operationKey{})
}

// WithRequestID records the HTTP correlation id. A blank id leaves ctx
// unchanged.
func WithRequestID(ctx context.Context, id string) context.Context {
	return withString(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the id recorded by WithRequestID.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, requestIDKey{})
}

func withString(ctx context.Context, key any, value string) context.Context {
	if value == "" {
		return ctx
	}
	return context.WithValue(ctx, key, value)
}

func stringValue(ctx context.Context, key any) (string, bool) {
	value, ok := ctx.Value(key).(string)
	return value, ok && value != ""
}
