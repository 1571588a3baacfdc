package envguard

import "os"

// ProcessTable is the running process's environment.
type ProcessTable struct{}

// Unsetenv implements Table.
func (ProcessTable) Unsetenv(name string) error {
	return os.Unsetenv(name)
}

// RemoveRaw implements Table. Without cgo on Linux the Go runtime's copy is
// the only table, and Unsetenv has already handled it.
func (ProcessTable) RemoveRaw(name string) int {
	return removeRawEnv(name)
}

// Exposed implements Table.
func (ProcessTable) Exposed(name string) bool {
	if _, ok := os.LookupEnv(name); ok {
		return true
	}
	return rawEnvContains(name)
}
