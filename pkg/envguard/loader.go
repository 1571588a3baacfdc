package envguard

import (
	"context"
	"errors"
	"os"

	"mercator-hq/oneshot/pkg/config"
	"mercator-hq/oneshot/pkg/handoff"
	"mercator-hq/oneshot/pkg/telemetry/logging"
)

// Hand-off outcomes.
const (
	HandoffLoaded  = "loaded"
	HandoffMissing = "missing"
	HandoffFailed  = "failed"
)

const viaCacheFile = "cache_file"

// LoadPrestaged fills the cache from a hand-off file and deletes it. Only
// protected names whose slots are still unaccessed are filled. An empty path
// is a no-op. It returns the number of values loaded.
//
// The file is removed whatever happened while reading it, and
// ONESHOT_CACHE_FILE is scrubbed from the environment.
func (e *Engine) LoadPrestaged(ctx context.Context, path string) int {
	if path == "" {
		return 0
	}
	ctx = withGuard(ctx)

	if e.cacheFileWait > 0 {
		waitCtx, cancel := context.WithTimeout(ctx, e.cacheFileWait)
		err := handoff.WaitForFile(waitCtx, path)
		cancel()
		if err != nil {
			e.logger.WarnContext(ctx, "cache file did not appear",
				"path", path,
				"wait", e.cacheFileWait,
				"error", err,
			)
		}
	}

	loaded, outcome := e.loadFile(ctx, path)

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		e.logger.WarnContext(ctx, "failed to delete cache file", "path", path, "error", err)
	}

	e.mu.Lock()
	e.scrubber.Scrub(ctx, config.EnvCacheFile)
	e.mu.Unlock()

	e.recorder.RecordHandoff(outcome, loaded)
	return loaded
}

func (e *Engine) loadFile(ctx context.Context, path string) (int, string) {
	// #nosec G304 - path is the operator-configured hand-off file
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			e.logger.WarnContext(ctx, "cache file not found", "path", path)
			return 0, HandoffMissing
		}
		e.logger.WarnContext(ctx, "failed to open cache file", "path", path, "error", err)
		return 0, HandoffFailed
	}
	defer func() { _ = f.Close() }()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.ensureInitLocked(ctx)

	loaded := 0
	err = handoff.Decode(f,
		func(name, value string) {
			if e.prestageLocked(ctx, name, value) {
				loaded++
			}
		},
		func(line int) {
			e.logger.WarnContext(ctx, "skipping malformed cache file line", "path", path, "line", line)
		},
	)
	if err != nil {
		e.logger.WarnContext(ctx, "cache file read incomplete", "path", path, "loaded", loaded, "error", err)
		return loaded, HandoffFailed
	}

	e.logger.InfoContext(ctx, "cache file loaded", "path", path, "loaded", loaded)
	return loaded, HandoffLoaded
}

// prestageLocked caches one hand-off value. A name the live environment also
// holds is scrubbed from it, unless scrubbing is disabled.
func (e *Engine) prestageLocked(ctx context.Context, name, value string) bool {
	i, ok := e.index[name]
	if !ok {
		e.logger.DebugContext(ctx, "ignoring unprotected name in cache file", "name", name)
		return false
	}

	s := &e.slots[i]
	if s.state != stateUnaccessed {
		return false
	}

	e.track(value)
	if !e.skipUnset && e.scrubber.Exposed(name) {
		e.scrubber.Scrub(ctx, name)
	}
	s.value = value
	s.state = stateCached

	e.logger.InfoContext(ctx, "token loaded from cache file",
		"name", name,
		"value", logging.Preview(value),
		"via", viaCacheFile,
	)
	return true
}
