//go:build !windows

package process

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/core-tools/hsu-proxy-await/pkg/errors"
	"github.com/core-tools/hsu-proxy-await/pkg/logging"
)

// Exec replaces the current process image with the command, so the
// child inherits our PID and receives the platform's signals directly
// with no supervision in between. On success this function does not
// return. The returned error always means the replacement failed.
func Exec(command string, args []string, logger logging.Logger) error {
	path, err := exec.LookPath(command)
	if err != nil {
		logger.Errorf("Failed to exec child program: %s: %v", command, err)
		return errors.NewProcessError("command not found", err).WithContext("command", command)
	}

	logger.Debugf("Replacing process image, command: %s, path: %s", command, path)

	argv := append([]string{command}, args...)
	err = syscall.Exec(path, argv, os.Environ())

	// Only reachable when exec failed.
	logger.Errorf("Failed to exec child program: %s: %v", command, err)
	return errors.NewProcessError("failed to exec child program", err).WithContext("command", command)
}
