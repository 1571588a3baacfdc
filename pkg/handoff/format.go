package handoff

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// MaxLineSize bounds a single hand-off line.
const MaxLineSize = 1 << 20

// ErrInvalidEntry is returned for entries that cannot be represented in the
// hand-off format.
var ErrInvalidEntry = errors.New("invalid hand-off entry")

// ValidateEntry checks that name and value survive an Encode/Decode round trip.
func ValidateEntry(name, value string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidEntry)
	}
	if name != strings.TrimSpace(name) {
		return fmt.Errorf("%w: name %q has surrounding whitespace", ErrInvalidEntry, name)
	}
	if strings.ContainsAny(name, "=\n\r") {
		return fmt.Errorf("%w: name %q contains '=' or a line break", ErrInvalidEntry, name)
	}
	if strings.ContainsAny(value, "\n\r") {
		// The value itself is secret; only the name goes into the error.
		return fmt.Errorf("%w: value of %s contains a line break", ErrInvalidEntry, name)
	}
	return nil
}

// Encode writes entries in the hand-off format.
func Encode(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if err := ValidateEntry(e.Name, e.Value); err != nil {
			return err
		}
		if _, err := bw.WriteString(e.Name + "=" + e.Value + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode reads the hand-off format from r and calls fn for every entry.
// Lines without '=' or with an empty name are passed to malformed by line
// number (starting at 1) and skipped. Decode stops early only on a read
// error or a line longer than MaxLineSize; entries before it have already
// been delivered.
func Decode(r io.Reader, fn func(name, value string), malformed func(line int)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), MaxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		name, value, ok := strings.Cut(text, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			if malformed != nil {
				malformed(line)
			}
			continue
		}

		fn(name, value)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read hand-off file at line %d: %w", line+1, err)
	}
	return nil
}
