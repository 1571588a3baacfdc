//go:build cgo && linux

package envguard

/*
#include <stdlib.h>
#include <string.h>

extern char **environ;

static int oneshot_entry_matches(const char *entry, const char *name, size_t n) {
	return strncmp(entry, name, n) == 0 && entry[n] == '=';
}

static int oneshot_remove_raw(const char *name) {
	size_t n = strlen(name);
	int removed = 0;
	char **p, **q;

	if (environ == NULL) {
		return 0;
	}
	for (p = environ; *p != NULL;) {
		if (oneshot_entry_matches(*p, name, n)) {
			for (q = p; *q != NULL; q++) {
				*q = *(q + 1);
			}
			removed++;
			continue;
		}
		p++;
	}
	return removed;
}

static int oneshot_raw_contains(const char *name) {
	size_t n = strlen(name);
	char **p;

	if (environ == NULL) {
		return 0;
	}
	for (p = environ; *p != NULL; p++) {
		if (oneshot_entry_matches(*p, name, n)) {
			return 1;
		}
	}
	return 0;
}
*/
import "C"

import "unsafe"

// removeRawEnv compacts the C environ array over every entry for name.
func removeRawEnv(name string) int {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return int(C.oneshot_remove_raw(cname))
}

func rawEnvContains(name string) bool {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return C.oneshot_raw_contains(cname) != 0
}
