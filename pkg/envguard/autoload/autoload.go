// Package autoload bootstraps the process-wide guard from a package init.
// Import it for its side effect, as early as possible in main:
//
//	import _ "mercator-hq/oneshot/pkg/envguard/autoload"
package autoload

import "mercator-hq/oneshot/pkg/envguard"

func init() {
	envguard.Default()
}
