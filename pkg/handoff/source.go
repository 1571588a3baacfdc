package handoff

import "context"

// Source supplies secret values to a launcher.
//
// Implementations include the process environment and a directory of
// secret files. Sources are tried in order by Collect.
type Source interface {
	// Lookup returns the value stored under name. ok is false when the
	// source does not hold the name; err is reserved for sources that hold
	// it but cannot return it safely.
	Lookup(ctx context.Context, name string) (value string, ok bool, err error)

	// Name returns the source name (env, dir).
	Name() string
}
