/*
Package handoff implements the trusted-launcher side of the pre-staged secret
bootstrap and the file format shared with the guard.

# Overview

A launcher that knows which variables are sensitive can avoid ever placing
them in a child's environment. It collects the values, writes them to a
one-time hand-off file readable only by its owner, and starts the child with
ONESHOT_CACHE_FILE pointing at that file. The guard inside the child reads the
file at load time, caches the values and deletes the file.

# Sources

Values are collected from one or more sources, tried in order:

  - EnvSource: the launcher's own environment
  - DirSource: one file per name in a directory (Kubernetes-style secret
    mounts). Files must be regular files with permissions 0600 or 0400.

	dir, err := handoff.NewDirSource("/var/run/secrets/oneshot")
	if err != nil {
		return err
	}
	entries, err := handoff.Collect(ctx, names, handoff.NewEnvSource(), dir)

# File Format

One NAME=VALUE entry per line. The name is everything before the first '='
(surrounding whitespace ignored); the value is everything after it, verbatim.
Blank lines are skipped and a trailing carriage return is dropped. Names may
not be empty or contain '='; values may not contain line breaks.

	path, err := handoff.Write(os.TempDir(), entries)

Write creates the file with mode 0600 under a random name
(oneshot-<uuid>.env). The content goes to an O_EXCL temporary file that is
renamed into place, so a reader never sees a partly written file. Decode reports malformed lines by line number only,
never by content, since every line may carry a secret.

# Waiting For The File

A launcher may start the child before the file is in place. WaitForFile
watches the file's directory with fsnotify until the file appears or the
context ends.
*/
package handoff
