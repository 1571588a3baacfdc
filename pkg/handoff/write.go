package handoff

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	// FilePrefix and FileSuffix frame the random hand-off file name.
	FilePrefix = "oneshot-"
	FileSuffix = ".env"
)

// tmpSuffix marks a hand-off file that is still being written.
const tmpSuffix = ".tmp"

// Write creates a new hand-off file in dir holding entries and returns its
// path. An empty dir means os.TempDir(). The file name is random and the file
// has mode 0600; on any failure nothing is left behind.
func Write(dir string, entries []Entry) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, FilePrefix+uuid.NewString()+FileSuffix)

	if err := WriteFile(path, entries); err != nil {
		return "", err
	}
	return path, nil
}

// WriteFile writes entries to path. The content is written to a temporary
// file in the same directory and renamed into place, so path never exists
// with partial content. An existing file at path is replaced.
func WriteFile(path string, entries []Entry) error {
	for _, e := range entries {
		if err := ValidateEntry(e.Name, e.Value); err != nil {
			return err
		}
	}

	tmp := path + "." + uuid.NewString() + tmpSuffix
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("failed to create hand-off file: %w", err)
	}

	if err := Encode(f, entries); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write hand-off file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to sync hand-off file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to close hand-off file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to move hand-off file into place: %w", err)
	}
	return nil
}

// Remove deletes a hand-off file. A file that is already gone is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// IsHandoffFile reports whether path looks like a file created by Write.
func IsHandoffFile(path string) bool {
	base := filepath.Base(path)
	if !strings.HasPrefix(base, FilePrefix) || !strings.HasSuffix(base, FileSuffix) {
		return false
	}
	_, err := uuid.Parse(strings.TrimSuffix(strings.TrimPrefix(base, FilePrefix), FileSuffix))
	return err == nil
}
