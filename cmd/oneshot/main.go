// Oneshot guards credential environment variables so they can be read once
// and then vanish from the process environment.
//
// The guard itself is the envguard package, linked into a program. This
// command is its companion: a trusted launcher that hands secrets to a child
// without putting them in the child's environment, and tools to inspect what
// the guard protects.
//
// Usage:
//
//	# List the protected names
//	oneshot names
//
//	# Start a program with its credentials pre-staged in a hand-off file
//	oneshot exec -- my-agent --flag
//
//	# Read names through the guard and report what happened
//	GITHUB_TOKEN=ghp_x oneshot probe GITHUB_TOKEN PATH
//
//	# Show version information
//	oneshot version
package main

func main() {
	Execute()
}
