//go:build !unix

package envguard

import "fmt"

func secureLookup() (LookupFunc, error) {
	return nil, fmt.Errorf("%w: %s is not available on this platform", ErrSymbolNotFound, SymbolSecureGetenv)
}
