package envguard

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"mercator-hq/oneshot/pkg/telemetry/logging"
)

type slotState uint8

const (
	stateUnaccessed slotState = iota
	stateCached
	stateAbsent
)

// slot is the cache entry for one protected name. It leaves stateUnaccessed
// exactly once and never returns to it.
type slot struct {
	name  string
	state slotState
	value string
}

// Options configures an Engine.
type Options struct {
	// Tokens is the raw comma-separated protected-name list. Empty means
	// the defaults.
	Tokens string

	// SkipUnset caches values without scrubbing them. Debugging only.
	SkipUnset bool

	// CacheFileWait bounds how long LoadPrestaged waits for its file.
	CacheFileWait time.Duration

	// Table is the environment to scrub. Defaults to ProcessTable.
	Table Table

	// Logger receives diagnostics. Defaults to a discarding logger.
	Logger *slog.Logger

	// Redactor, when set, is told about every cached value.
	Redactor *logging.Redactor

	// Recorder receives metric events. Optional.
	Recorder Recorder
}

// Engine is the protected-name registry and secret cache. One mutex guards
// registry initialization and every slot transition.
type Engine struct {
	symbols       *SymbolTable
	scrubber      *Scrubber
	logger        *slog.Logger
	redactor      *logging.Redactor
	recorder      Recorder
	tokens        string
	skipUnset     bool
	cacheFileWait time.Duration

	mu          sync.Mutex
	initialized bool
	source      NameSource
	slots       []slot
	index       map[string]int
}

// NewEngine creates an engine. The protected-name set is resolved lazily on
// the first lookup.
func NewEngine(symbols *SymbolTable, opts Options) *Engine {
	if symbols == nil {
		symbols = NewSymbolTable(nil, nil)
	}
	if opts.Table == nil {
		opts.Table = ProcessTable{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}

	return &Engine{
		symbols:       symbols,
		scrubber:      NewScrubber(opts.Table, opts.Logger, opts.Recorder),
		logger:        opts.Logger,
		redactor:      opts.Redactor,
		recorder:      opts.Recorder,
		tokens:        opts.Tokens,
		skipUnset:     opts.SkipUnset,
		cacheFileWait: opts.CacheFileWait,
	}
}

// LookupEnvContext is the standard lookup. Protected names are served from
// the cache after their first read; other names pass through.
func (e *Engine) LookupEnvContext(ctx context.Context, name string) (string, bool) {
	syms := e.symbols.Bind()
	if Guarded(ctx) {
		return syms.Getenv(name)
	}
	return e.lookup(withGuard(ctx), name, syms.Getenv, SymbolGetenv)
}

// SecureLookupEnvContext is the privilege-aware lookup. Without a bound
// privilege-aware original it behaves exactly like LookupEnvContext.
func (e *Engine) SecureLookupEnvContext(ctx context.Context, name string) (string, bool) {
	syms := e.symbols.Bind()
	if syms.SecureGetenv == nil {
		return e.LookupEnvContext(ctx, name)
	}
	if Guarded(ctx) {
		return syms.SecureGetenv(name)
	}
	return e.lookup(withGuard(ctx), name, syms.SecureGetenv, SymbolSecureGetenv)
}

// LookupEnv is LookupEnvContext with a background context.
//
// The recursion guard travels on the context, so LookupEnv carries none.
// Code that runs inside a lookup, such as a slog.Handler attached to the
// engine, must read the environment with LookupEnvContext and the context it
// was handed; calling LookupEnv or Getenv there deadlocks on the engine lock.
func (e *Engine) LookupEnv(name string) (string, bool) {
	return e.LookupEnvContext(context.Background(), name)
}

// Getenv returns the value of name, or "" when it is absent. Like LookupEnv
// it starts a fresh, unguarded lookup and must not be called from a log
// handler attached to the engine.
func (e *Engine) Getenv(name string) string {
	v, _ := e.LookupEnv(name)
	return v
}

// SecureGetenv is the privilege-aware Getenv.
func (e *Engine) SecureGetenv(name string) string {
	v, _ := e.SecureLookupEnvContext(context.Background(), name)
	return v
}

// Names returns a copy of the protected-name set and where it came from.
func (e *Engine) Names(ctx context.Context) ([]string, NameSource) {
	ctx = withGuard(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ensureInitLocked(ctx)

	names := make([]string, len(e.slots))
	for i, s := range e.slots {
		names[i] = s.name
	}
	return names, e.source
}

// Protected reports whether name is in the protected-name set.
func (e *Engine) Protected(ctx context.Context, name string) bool {
	ctx = withGuard(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ensureInitLocked(ctx)

	_, ok := e.index[name]
	return ok
}

// Exposed reports whether name is visible in the environment the engine
// scrubs.
func (e *Engine) Exposed(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scrubber.Exposed(name)
}

func (e *Engine) lookup(ctx context.Context, name string, real LookupFunc, via string) (string, bool) {
	e.mu.Lock()
	e.ensureInitLocked(ctx)

	i, ok := e.index[name]
	if !ok {
		e.mu.Unlock()
		e.recorder.RecordPassthrough(via)
		return real(name)
	}

	value, present := e.queryLocked(ctx, &e.slots[i], real, via)
	e.mu.Unlock()
	return value, present
}

// queryLocked runs the slot state machine. The real environment is read only
// while the slot is unaccessed.
func (e *Engine) queryLocked(ctx context.Context, s *slot, real LookupFunc, via string) (string, bool) {
	switch s.state {
	case stateCached:
		e.recorder.RecordCacheHit()
		return s.value, true
	case stateAbsent:
		e.recorder.RecordCacheHit()
		return "", false
	}

	value, ok := real(s.name)
	if !ok {
		s.state = stateAbsent
		e.recorder.RecordFirstAccess(via, false)
		e.logger.DebugContext(ctx, "protected name not set", "name", s.name, "via", via)
		return "", false
	}

	// The caller's string may alias memory the scrub invalidates.
	value = strings.Clone(value)
	e.track(value)

	if !e.skipUnset {
		e.scrubber.Scrub(ctx, s.name)
	}
	s.value = value
	s.state = stateCached

	e.recorder.RecordFirstAccess(via, true)
	e.logger.InfoContext(ctx, "token accessed and cached",
		"name", s.name,
		"value", logging.Preview(value),
		"via", via,
	)
	return value, true
}

func (e *Engine) ensureInitLocked(ctx context.Context) {
	if e.initialized {
		return
	}
	e.initialized = true

	names, source := ResolveNames(e.tokens)
	e.source = source
	e.slots = make([]slot, 0, len(names))
	e.index = make(map[string]int, len(names))
	for _, name := range names {
		if _, dup := e.index[name]; dup {
			continue
		}
		e.index[name] = len(e.slots)
		e.slots = append(e.slots, slot{name: name})
	}

	if source == SourceFallback {
		e.logger.WarnContext(ctx, "token list parsed to zero names, falling back to defaults",
			"configured", e.tokens,
		)
	}
	e.logger.InfoContext(ctx, "protected names loaded",
		"count", len(e.slots),
		"source", string(source),
	)
	if e.skipUnset {
		e.logger.WarnContext(ctx, "skip-unset mode enabled, protected values stay in the environment")
	}
	if err := e.symbols.SecureBindError(); err != nil {
		e.logger.DebugContext(ctx, "privilege-aware lookup unavailable, using standard lookup", "error", err)
	}
	e.recorder.RecordRegistry(string(source), len(e.slots))
}

func (e *Engine) track(value string) {
	if e.redactor != nil {
		e.redactor.Track(value)
	}
}
