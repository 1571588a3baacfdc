/*
Package envguard keeps sensitive environment variables out of a process's
environment once they have been read.

# Overview

A protected name (GITHUB_TOKEN, OPENAI_API_KEY, ...) is read from the live
environment at most once. On that first read the value is copied into an
in-memory cache and the name is scrubbed from the environment: it is unset
through the normal API and, on Linux with cgo, removed from the C environ
array that external inspection tools read. Every later read is served from
the cache, so code in the process that needs the credential again still gets
it.

Names that are not protected pass straight through to the original lookup.

# Entry Points

	guard := envguard.Default().Engine

	token, ok := guard.LookupEnvContext(ctx, "GITHUB_TOKEN")
	home := guard.Getenv("HOME") // passthrough

SecureLookupEnvContext is the privilege-aware variant: on unix it reports a
name as absent when the process runs with differing real and effective user
or group IDs, and that absent result is what gets cached.

# Recursion Guard

Diagnostics are emitted while the cache lock is held. A log handler that reads
the environment (for example to resolve a locale) would re-enter the engine
and deadlock. Every entry point therefore marks its context before taking the
lock and logs with that context; a call that arrives with a marked context
skips the engine entirely and goes straight to the original lookup, whatever
the name. Handlers must pass on the context they are given. Guarded reports
whether a context carries the mark.

# Pre-staged Values

A trusted launcher can avoid ever exposing values in the child's environment
by writing them to a one-time hand-off file (see package handoff) and setting
ONESHOT_CACHE_FILE. Bootstrap loads the file into the cache before anything
else can read the environment, deletes it, and scrubs ONESHOT_CACHE_FILE.
Names the file did not supply fall back to the first-read path.

# Process Lifetime

Default builds the process-wide engine once. Blank-importing
mercator-hq/oneshot/pkg/envguard/autoload runs it from a package init:

	import _ "mercator-hq/oneshot/pkg/envguard/autoload"

The engine has no teardown; cached values live until the process exits.
*/
package envguard
