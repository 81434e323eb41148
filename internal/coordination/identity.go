package coordination

import "context"

type nameKey struct{}

// WithName returns a copy of ctx that identifies the caller as the endpoint
// called name. Every Hub operation resolves the caller through this value.
func WithName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, nameKey{}, name)
}

// NameFrom returns the endpoint name bound to ctx. ok is false when no name,
// or an empty one, was bound.
func NameFrom(ctx context.Context) (name string, ok bool) {
	name, ok = ctx.Value(nameKey{}).(string)
	return name, ok && name != ""
}
