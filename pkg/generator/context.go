package generator

import "context"

type contextKey struct{}

// NewContext returns a copy of ctx carrying g.
func NewContext(ctx context.Context, g *Generator) context.Context {
	return context.WithValue(ctx, contextKey{}, g)
}

// FromContext returns the generator carried by ctx, or Default() if none.
func FromContext(ctx context.Context) *Generator {
	if g, ok := ctx.Value(contextKey{}).(*Generator); ok && g != nil {
		return g
	}
	return Default()
}
