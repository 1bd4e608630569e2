//go:build windows

package process

import (
	"os"

	"github.com/core-tools/hsu-proxy-await/pkg/logging"
)

// Exec approximates process-image replacement, which Windows does not
// have: the command runs as a supervised child and this process exits
// with the child's code. On success this function does not return.
func Exec(command string, args []string, logger logging.Logger) error {
	status := Supervise(command, args, logger)
	if !status.Determinate {
		os.Exit(ExitCodeOSError)
	}
	os.Exit(status.Code)
	return nil
}
