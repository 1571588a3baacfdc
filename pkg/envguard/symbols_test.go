package envguard

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

type countingResolver struct {
	calls  atomic.Int32
	secure bool
	getenv bool
}

func (r *countingResolver) Resolve(symbol string) (LookupFunc, error) {
	r.calls.Add(1)
	switch {
	case symbol == SymbolGetenv && r.getenv:
		return func(string) (string, bool) { return "", false }, nil
	case symbol == SymbolSecureGetenv && r.secure:
		return func(string) (string, bool) { return "", false }, nil
	}
	return nil, ErrSymbolNotFound
}

func TestSymbolTable_BindOnce(t *testing.T) {
	resolver := &countingResolver{getenv: true, secure: true}
	table := NewSymbolTable(resolver, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			syms := table.Bind()
			if syms.Getenv == nil {
				t.Error("expected getenv to be bound")
			}
		}()
	}
	wg.Wait()

	// One resolution per symbol, no matter how many callers.
	if got := resolver.calls.Load(); got != 2 {
		t.Errorf("expected 2 resolutions, got %d", got)
	}
}

func TestSymbolTable_SecureMissing(t *testing.T) {
	table := NewSymbolTable(&countingResolver{getenv: true}, nil)

	syms := table.Bind()
	if syms.SecureGetenv != nil {
		t.Error("expected privilege-aware lookup to be unbound")
	}
	if err := table.SecureBindError(); !errors.Is(err, ErrSymbolNotFound) {
		t.Errorf("expected ErrSymbolNotFound, got %v", err)
	}
}

func TestSymbolTable_GetenvMissingIsFatal(t *testing.T) {
	var fatalCalled bool
	table := NewSymbolTable(&countingResolver{secure: true}, func(msg string, err error) {
		fatalCalled = true
		if !errors.Is(err, ErrSymbolNotFound) {
			t.Errorf("expected ErrSymbolNotFound, got %v", err)
		}
	})

	defer func() {
		if recover() == nil {
			t.Error("expected Bind to panic after the fatal hook returned")
		}
		if !fatalCalled {
			t.Error("expected fatal hook to be called")
		}
	}()
	table.Bind()
}

func TestProcessResolver(t *testing.T) {
	t.Setenv("ONESHOT_RESOLVER_TEST", "value")

	getenv, err := ProcessResolver{}.Resolve(SymbolGetenv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := getenv("ONESHOT_RESOLVER_TEST"); !ok || v != "value" {
		t.Errorf("expected value, got %q ok=%v", v, ok)
	}

	if _, err := (ProcessResolver{}).Resolve("nonexistent"); !errors.Is(err, ErrSymbolNotFound) {
		t.Errorf("expected ErrSymbolNotFound, got %v", err)
	}
}
