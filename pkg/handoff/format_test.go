package handoff

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	input := "A=1\n\n  B =two=parts\r\nbroken line\n=novalue\nC=\n"

	got := map[string]string{}
	var bad []int
	err := Decode(strings.NewReader(input),
		func(name, value string) { got[name] = value },
		func(line int) { bad = append(bad, line) },
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]string{"A": "1", "B": "two=parts", "C": ""}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if !reflect.DeepEqual(bad, []int{4, 5}) {
		t.Errorf("expected malformed lines [4 5], got %v", bad)
	}
}

func TestDecode_ValueKeptVerbatim(t *testing.T) {
	var value string
	err := Decode(strings.NewReader("TOKEN= spaced 'quoted' #notacomment \n"),
		func(_, v string) { value = v }, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != " spaced 'quoted' #notacomment " {
		t.Errorf("value altered: %q", value)
	}
}

func TestDecode_LineTooLong(t *testing.T) {
	input := "A=1\nB=" + strings.Repeat("x", MaxLineSize+1) + "\n"

	var names []string
	err := Decode(strings.NewReader(input), func(name, _ string) { names = append(names, name) }, nil)
	if err == nil {
		t.Fatal("expected error for oversized line")
	}
	if !reflect.DeepEqual(names, []string{"A"}) {
		t.Errorf("expected entries before the long line to be delivered, got %v", names)
	}
}

func TestValidateEntry(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
	}{
		{"valid", "TOKEN", "abc", false},
		{"empty value", "TOKEN", "", false},
		{"value with equals", "TOKEN", "a=b", false},
		{"empty name", "", "abc", true},
		{"name with equals", "A=B", "abc", true},
		{"name with spaces", " TOKEN", "abc", true},
		{"value with newline", "TOKEN", "a\nb", true},
		{"value with carriage return", "TOKEN", "a\rb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntry(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEntry() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidEntry) {
				t.Errorf("expected ErrInvalidEntry, got %v", err)
			}
		})
	}
}

func TestValidateEntry_DoesNotLeakValue(t *testing.T) {
	err := ValidateEntry("TOKEN", "secret-part\nmore")
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Contains(err.Error(), "secret-part") {
		t.Errorf("error message leaks value: %v", err)
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	entries := []Entry{
		{Name: "GITHUB_TOKEN", Value: "ghp_abc"},
		{Name: "OPENAI_API_KEY", Value: "sk=with=equals"},
	}

	path, err := Write(dir, entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("expected file in %s, got %s", dir, path)
	}
	if !IsHandoffFile(path) {
		t.Errorf("expected %s to be recognized as a hand-off file", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected mode 0600, got %o", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]string{}
	if err := Decode(bytes.NewReader(data), func(n, v string) { got[n] = v }, nil); err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"GITHUB_TOKEN": "ghp_abc", "OPENAI_API_KEY": "sk=with=equals"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if err := Remove(path); err != nil {
		t.Errorf("unexpected remove error: %v", err)
	}
	if err := Remove(path); err != nil {
		t.Errorf("removing a missing file should succeed, got %v", err)
	}
}

func TestWrite_InvalidEntryLeavesNothing(t *testing.T) {
	dir := t.TempDir()

	_, err := Write(dir, []Entry{{Name: "A", Value: "ok"}, {Name: "B", Value: "bad\nvalue"}})
	if !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry, got %v", err)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Errorf("expected no files left behind, found %d", len(files))
	}
}

func TestIsHandoffFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/tmp/oneshot-123e4567-e89b-12d3-a456-426614174000.env", true},
		{"/tmp/oneshot-nope.env", false},
		{"/tmp/other-123e4567-e89b-12d3-a456-426614174000.env", false},
		{"/tmp/oneshot-123e4567-e89b-12d3-a456-426614174000.txt", false},
	}

	for _, tt := range tests {
		if got := IsHandoffFile(tt.path); got != tt.want {
			t.Errorf("IsHandoffFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
