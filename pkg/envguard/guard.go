package envguard

import "context"

type guardKey struct{}

func withGuard(ctx context.Context) context.Context {
	return context.WithValue(ctx, guardKey{}, true)
}

// Guarded reports whether ctx was issued by the engine while it holds its
// lock. Lookups made with such a context bypass the engine.
func Guarded(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	v, _ := ctx.Value(guardKey{}).(bool)
	return v
}
