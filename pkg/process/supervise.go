package process

import (
	"os"
	"os/exec"
	"os/signal"

	"github.com/core-tools/hsu-proxy-await/pkg/logging"
)

// ExitStatus describes the outcome of a supervised child process.
// Determinate is false when no numeric exit code could be captured,
// either because the child was killed by a signal or because it never
// started; the caller maps that to the reserved OS-error exit code.
type ExitStatus struct {
	Code        int
	Determinate bool
}

// Supervise spawns the command as a true child process with inherited
// stdio and waits for it to complete, relaying a termination signal to
// it if one arrives first.
//
// The signal handler is registered before the child is started, so a
// signal delivered during spawning is queued rather than lost. After a
// signal has been forwarded the child's exit is the only event waited
// on; the child's own handling of the signal decides its exit status.
//
// Spawn failure is not an error to the caller: it is logged and folded
// into an indeterminate ExitStatus, so that supervision still proceeds
// to the shutdown notification step.
func Supervise(command string, args []string, logger logging.Logger) ExitStatus {
	cmd := exec.Command(command, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, terminationSignals()...)
	defer signal.Stop(sigCh)

	if err := cmd.Start(); err != nil {
		logger.Errorf("Failed to fork child program: %s: %v", command, err)
		return ExitStatus{}
	}

	logger.Debugf("Supervising child process, command: %s, PID: %d", command, cmd.Process.Pid)

	waitCh := make(chan error, 1)
	go func() {
		waitCh <- cmd.Wait()
	}()

	select {
	case err := <-waitCh:
		return exitStatus(err)
	case sig := <-sigCh:
		pid := cmd.Process.Pid
		logger.Infof("Forwarding termination signal to child process, signal: %v, PID: %d", sig, pid)
		if err := forwardSignal(pid, sig); err != nil {
			logger.Errorf("Failed to forward %v to child process, PID: %d, error: %v", sig, pid, err)
		}
		// The child owns the rest of its shutdown; just collect its exit.
		return exitStatus(<-waitCh)
	}
}

func exitStatus(err error) ExitStatus {
	if err == nil {
		return ExitStatus{Code: 0, Determinate: true}
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		if code := exitErr.ExitCode(); code >= 0 {
			return ExitStatus{Code: code, Determinate: true}
		}
	}
	// Killed by a signal, or the wait itself failed.
	return ExitStatus{}
}
