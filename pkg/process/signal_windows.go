//go:build windows

package process

import (
	"os"
)

// terminationSignals lists the signals relayed to a supervised child.
// Windows has no SIGTERM delivery; interrupt is the closest equivalent.
func terminationSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}

func forwardSignal(pid int, sig os.Signal) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return proc.Signal(sig)
}
