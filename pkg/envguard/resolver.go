package envguard

import (
	"fmt"
	"os"
)

// ProcessResolver binds the originals to the running process's environment.
type ProcessResolver struct{}

// Resolve implements Resolver.
func (ProcessResolver) Resolve(symbol string) (LookupFunc, error) {
	switch symbol {
	case SymbolGetenv:
		return os.LookupEnv, nil
	case SymbolSecureGetenv:
		return secureLookup()
	default:
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}
}
