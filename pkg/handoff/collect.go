package handoff

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Entry is one value to hand off.
type Entry struct {
	Name   string
	Value  string
	Source string
}

// Collect resolves each name from the first source that holds it.
//
// Names no source holds are left out. A source error for one name does not
// stop the others; the next source is tried and all errors are returned
// together alongside whatever was collected. Duplicate names are resolved once.
func Collect(ctx context.Context, names []string, sources ...Source) ([]Entry, error) {
	var (
		entries []Entry
		errs    []error
		seen    = make(map[string]bool, len(names))
	)

	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		for _, source := range sources {
			if err := ctx.Err(); err != nil {
				return entries, err
			}

			value, ok, err := source.Lookup(ctx, name)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s source: %s: %w", source.Name(), name, err))
				slog.Debug("source failed to supply value",
					"source", source.Name(),
					"name", name,
					"error", err,
				)
				continue
			}
			if !ok {
				continue
			}

			entries = append(entries, Entry{Name: name, Value: value, Source: source.Name()})
			slog.Debug("value collected", "source", source.Name(), "name", name)
			break
		}
	}

	return entries, errors.Join(errs...)
}
