package handoff

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDirSource_Lookup(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, "GITHUB_TOKEN"), []byte("ghp_value\n"), 0600); err != nil {
		t.Fatal(err)
	}

	source, err := NewDirSource(tmpDir)
	if err != nil {
		t.Fatalf("failed to create source: %v", err)
	}

	value, ok, err := source.Lookup(context.Background(), "GITHUB_TOKEN")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected value to be found")
	}

	// Value should have whitespace trimmed
	if value != "ghp_value" {
		t.Errorf("expected value 'ghp_value', got '%s'", value)
	}
}

func TestDirSource_Lookup_NotFound(t *testing.T) {
	source, err := NewDirSource(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create source: %v", err)
	}

	_, ok, err := source.Lookup(context.Background(), "MISSING")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected missing file to be reported as not held")
	}
}

func TestDirSource_Permissions(t *testing.T) {
	tests := []struct {
		name        string
		permissions os.FileMode
		shouldWork  bool
	}{
		{"0600 permissions", 0600, true},
		{"0400 permissions", 0400, true},
		{"0640 permissions", 0640, false},
		{"0644 permissions", 0644, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			path := filepath.Join(tmpDir, "TOKEN")
			if err := os.WriteFile(path, []byte("value"), 0600); err != nil {
				t.Fatal(err)
			}
			// Chmod explicitly so the umask does not interfere.
			if err := os.Chmod(path, tt.permissions); err != nil {
				t.Fatal(err)
			}

			source, err := NewDirSource(tmpDir)
			if err != nil {
				t.Fatalf("failed to create source: %v", err)
			}

			_, _, err = source.Lookup(context.Background(), "TOKEN")
			if tt.shouldWork && err != nil {
				t.Errorf("expected success, got error: %v", err)
			}
			if !tt.shouldWork {
				if err == nil {
					t.Error("expected error for insecure permissions, got nil")
				} else if !errors.Is(err, ErrInsecurePermissions) {
					t.Errorf("expected ErrInsecurePermissions, got %v", err)
				}
			}
		})
	}
}

func TestDirSource_InvalidNames(t *testing.T) {
	source, err := NewDirSource(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create source: %v", err)
	}

	for _, name := range []string{"", ".", "..", "../etc/passwd", "a/b"} {
		if _, _, err := source.Lookup(context.Background(), name); err == nil {
			t.Errorf("expected error for name %q", name)
		}
	}
}

func TestDirSource_RejectsDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, "TOKEN"), 0700); err != nil {
		t.Fatal(err)
	}

	source, err := NewDirSource(tmpDir)
	if err != nil {
		t.Fatalf("failed to create source: %v", err)
	}

	if _, _, err := source.Lookup(context.Background(), "TOKEN"); err == nil {
		t.Error("expected error for directory entry")
	}
}

func TestNewDirSource_NotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewDirSource(path); err == nil {
		t.Error("expected error for non-directory base path")
	}
	if _, err := NewDirSource(filepath.Join(path, "missing")); err == nil {
		t.Error("expected error for missing base path")
	}
}
