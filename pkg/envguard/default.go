package envguard

import (
	"context"
	"sync"
)

var (
	defaultOnce    sync.Once
	defaultProcess *Process
)

// Default returns the process-wide guard, bootstrapping it on first use.
func Default() *Process {
	defaultOnce.Do(func() {
		defaultProcess = Bootstrap(context.Background(), BootstrapOptions{})
	})
	return defaultProcess
}

// Getenv reads name through the process-wide guard. It carries no
// recursion guard; see Engine.LookupEnv.
func Getenv(name string) string {
	return Default().Engine.Getenv(name)
}

// LookupEnv reads name through the process-wide guard. It carries no
// recursion guard; see Engine.LookupEnv.
func LookupEnv(name string) (string, bool) {
	return Default().Engine.LookupEnv(name)
}

// SecureGetenv reads name through the process-wide guard's privilege-aware
// lookup.
func SecureGetenv(name string) string {
	return Default().Engine.SecureGetenv(name)
}
