//go:build !(cgo && linux)

package envguard

import (
	"os"
	"strings"
)

func removeRawEnv(string) int {
	return 0
}

func rawEnvContains(name string) bool {
	prefix := name + "="
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, prefix) {
			return true
		}
	}
	return false
}
