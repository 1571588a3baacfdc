package cli

import (
	"os"
	"os/signal"
	"syscall"
)

// ForwardedSignals are relayed to a child by default.
var ForwardedSignals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}

// Signaler receives forwarded signals. *os.Process implements it.
type Signaler interface {
	Signal(sig os.Signal) error
}

// ForwardSignals relays sigs (ForwardedSignals when none are given) received
// by this process to target until stop is called. While forwarding, the
// signals no longer terminate this process.
func ForwardSignals(target Signaler, sigs ...os.Signal) (stop func()) {
	if len(sigs) == 0 {
		sigs = ForwardedSignals
	}

	sigChan := make(chan os.Signal, len(sigs))
	done := make(chan struct{})
	signal.Notify(sigChan, sigs...)

	go func() {
		for {
			select {
			case sig := <-sigChan:
				// The child may already be gone; nothing to do then.
				_ = target.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigChan)
		close(done)
	}
}
