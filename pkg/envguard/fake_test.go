package envguard

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"

	"mercator-hq/oneshot/pkg/telemetry/logging"
)

// fakeEnv is an in-memory environment that counts real reads and scrubs.
// It serves as both the Resolver and the Table.
type fakeEnv struct {
	mu           sync.Mutex
	vars         map[string]string
	reads        map[string]int
	unsets       map[string]int
	secureDenied bool
	noSecure     bool
}

func newFakeEnv(vars map[string]string) *fakeEnv {
	if vars == nil {
		vars = map[string]string{}
	}
	return &fakeEnv{
		vars:   vars,
		reads:  map[string]int{},
		unsets: map[string]int{},
	}
}

func (f *fakeEnv) Resolve(symbol string) (LookupFunc, error) {
	switch symbol {
	case SymbolGetenv:
		return f.lookup, nil
	case SymbolSecureGetenv:
		if f.noSecure {
			return nil, ErrSymbolNotFound
		}
		return f.secureLookup, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
}

func (f *fakeEnv) lookup(name string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads[name]++
	v, ok := f.vars[name]
	return v, ok
}

func (f *fakeEnv) secureLookup(name string) (string, bool) {
	if f.secureDenied {
		f.mu.Lock()
		f.reads[name]++
		f.mu.Unlock()
		return "", false
	}
	return f.lookup(name)
}

func (f *fakeEnv) Unsetenv(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.vars[name]; ok {
		f.unsets[name]++
	}
	delete(f.vars, name)
	return nil
}

func (f *fakeEnv) RemoveRaw(string) int { return 0 }

func (f *fakeEnv) Exposed(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.vars[name]
	return ok
}

func (f *fakeEnv) set(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vars[name] = value
}

func (f *fakeEnv) readCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads[name]
}

func (f *fakeEnv) unsetCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unsets[name]
}

// syncBuffer is a bytes.Buffer safe for concurrent log writes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestEngine(t *testing.T, env *fakeEnv, opts Options) *Engine {
	t.Helper()
	symbols := NewSymbolTable(env, func(msg string, err error) {
		t.Fatalf("unexpected fatal: %s: %v", msg, err)
	})
	opts.Table = env
	return NewEngine(symbols, opts)
}

func newLoggedEngine(t *testing.T, env *fakeEnv, opts Options) (*Engine, *syncBuffer) {
	t.Helper()
	buf := &syncBuffer{}
	redactor := logging.NewRedactor()
	logger, err := logging.New(logging.Config{Level: "debug", Writer: buf, Redactor: redactor})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	opts.Logger = logger
	opts.Redactor = redactor
	return newTestEngine(t, env, opts), buf
}

var bg = context.Background()
