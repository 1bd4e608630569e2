//go:build !windows

package process

import (
	"os"
	"syscall"

	"github.com/core-tools/hsu-proxy-await/pkg/errors"
)

// terminationSignals lists the signals relayed to a supervised child.
// SIGTERM is what the orchestration platform delivers to request
// graceful shutdown.
func terminationSignals() []os.Signal {
	return []os.Signal{syscall.SIGTERM}
}

// forwardSignal relays sig to the child by PID. The child PID only, not
// the process group: the child decides what to do with its own tree.
func forwardSignal(pid int, sig os.Signal) error {
	s, ok := sig.(syscall.Signal)
	if !ok {
		return errors.NewInternalError("cannot forward non-syscall signal", nil).WithContext("signal", sig.String())
	}
	return syscall.Kill(pid, s)
}
