package envguard

import (
	"errors"
	"fmt"
	"sync"
)

// Original lookup symbols.
const (
	SymbolGetenv       = "getenv"
	SymbolSecureGetenv = "secure_getenv"
)

// ErrSymbolNotFound is returned by a Resolver that cannot bind a symbol.
var ErrSymbolNotFound = errors.New("symbol not found")

// LookupFunc is an original, non-intercepted environment lookup.
type LookupFunc func(name string) (string, bool)

// Resolver binds original lookup symbols.
type Resolver interface {
	Resolve(symbol string) (LookupFunc, error)
}

// Symbols holds the bound originals. SecureGetenv is nil when the platform
// has no privilege-aware lookup.
type Symbols struct {
	Getenv       LookupFunc
	SecureGetenv LookupFunc
}

// SymbolTable resolves the originals once and hands out the result.
type SymbolTable struct {
	resolver Resolver
	fatal    FatalFunc

	once      sync.Once
	symbols   Symbols
	secureErr error
}

// NewSymbolTable creates a table. A nil resolver means ProcessResolver and a
// nil fatal hook means ExitOnFatal.
func NewSymbolTable(resolver Resolver, fatal FatalFunc) *SymbolTable {
	if resolver == nil {
		resolver = ProcessResolver{}
	}
	if fatal == nil {
		fatal = ExitOnFatal
	}
	return &SymbolTable{resolver: resolver, fatal: fatal}
}

// Bind resolves the originals on first use and returns them. It is safe for
// concurrent use; only the first caller resolves.
//
// Failing to bind getenv calls the fatal hook. If the hook returns, Bind
// panics rather than let the process run unguarded.
func (t *SymbolTable) Bind() Symbols {
	t.once.Do(t.bind)
	return t.symbols
}

// SecureBindError returns why the privilege-aware lookup could not be bound,
// or nil.
func (t *SymbolTable) SecureBindError() error {
	t.Bind()
	return t.secureErr
}

func (t *SymbolTable) bind() {
	getenv, err := t.resolver.Resolve(SymbolGetenv)
	if err == nil && getenv == nil {
		err = ErrSymbolNotFound
	}
	if err != nil {
		err = fmt.Errorf("bind %s: %w", SymbolGetenv, err)
		t.fatal("could not bind original lookup", err)
		panic(err)
	}

	secure, err := t.resolver.Resolve(SymbolSecureGetenv)
	if err == nil && secure == nil {
		err = ErrSymbolNotFound
	}
	if err != nil {
		secure = nil
		t.secureErr = fmt.Errorf("bind %s: %w", SymbolSecureGetenv, err)
	}

	t.symbols = Symbols{Getenv: getenv, SecureGetenv: secure}
}
