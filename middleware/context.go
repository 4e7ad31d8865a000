package middleware

import "context"

type serviceNameKey struct{}
type operationNameKey struct{}

// WithServiceName returns a context carrying the service ID, for protocols
// that need it at serialization time (e.g. the X-Amz-Target header).
func WithServiceName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, serviceNameKey{}, name)
}

// GetServiceName returns the service ID set by WithServiceName, or "" if
// unset.
func GetServiceName(ctx context.Context) string {
	v, _ := ctx.Value(serviceNameKey{}).(string)
	return v
}

// WithOperationName returns a context carrying the operation name.
func WithOperationName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, operationNameKey{}, name)
}

// GetOperationName returns the operation name set by WithOperationName, or
// "" if unset.
func GetOperationName(ctx context.Context) string {
	v, _ := ctx.Value(operationNameKey{}).(string)
	return v
}
