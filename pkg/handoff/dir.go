package handoff

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInsecurePermissions is returned for secret files readable or writable
// by anyone but their owner.
var ErrInsecurePermissions = errors.New("insecure permissions")

// DirSource reads values from individual files in a directory.
//
// The file name is the variable name. File permissions are validated to
// ensure secrets are properly protected (0600 or 0400 only).
type DirSource struct {
	BasePath string
}

// NewDirSource creates a directory-backed source. The directory must exist.
func NewDirSource(basePath string) (*DirSource, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat base path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("base path is not a directory: %s", basePath)
	}

	absBase, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base path: %w", err)
	}

	return &DirSource{BasePath: absBase}, nil
}

// Lookup reads the file named after the variable. A missing file means the
// source does not hold the name. Surrounding whitespace is trimmed, since
// mounted secrets usually end with a newline.
func (s *DirSource) Lookup(ctx context.Context, name string) (string, bool, error) {
	if name == "" || strings.ContainsRune(name, os.PathSeparator) || name == "." || name == ".." {
		return "", false, fmt.Errorf("invalid secret name %q", name)
	}

	path := filepath.Join(s.BasePath, name)

	// Validate path is within BasePath (prevent directory traversal)
	if !strings.HasPrefix(path, s.BasePath+string(filepath.Separator)) {
		return "", false, fmt.Errorf("invalid secret path: directory traversal detected")
	}

	// Lstat so a symlink is rejected rather than followed.
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to stat secret file: %w", err)
	}

	if !info.Mode().IsRegular() {
		return "", false, fmt.Errorf("secret path is not a regular file: %s", name)
	}

	mode := info.Mode().Perm()
	if mode != 0600 && mode != 0400 {
		return "", false, fmt.Errorf("%w on %s: %o (expected 0600 or 0400)", ErrInsecurePermissions, path, mode)
	}

	// #nosec G304 - Path is validated above to prevent directory traversal
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("failed to read secret file: %w", err)
	}

	return strings.TrimSpace(string(data)), true, nil
}

// Name returns the source name.
func (s *DirSource) Name() string {
	return "dir"
}
