package await

import (
	"context"

	"github.com/core-tools/hsu-proxy-await/pkg/admin"
	"github.com/core-tools/hsu-proxy-await/pkg/logging"
	"github.com/core-tools/hsu-proxy-await/pkg/process"
)

// ExitCodeUnavailable is the reserved exit code for a fatal readiness
// timeout: the proxy never became ready within the configured deadline.
//
// From https://man.netbsd.org/sysexits.3
const ExitCodeUnavailable = 69

// Run executes the full gate: wait for the proxy (unless disabled),
// then launch the target command. The returned value is the process
// exit code; Run only returns in supervised mode, on failure, or when
// no command is configured, since a successful exec replaces this
// process.
func Run(cfg Config, logger logging.Logger) int {
	client := admin.NewClient(cfg.Port, logger)

	if reason, disabled := DisabledReason(); disabled {
		// Verbose maps to the debug level, so this line only appears
		// when verbosity is enabled.
		logger.Debugf("Proxy readiness check skipped: %s", reason)
	} else if code, proceed := awaitReady(client, cfg, logger); !proceed {
		return code
	}

	if cfg.Shutdown {
		status := process.Supervise(cfg.Command, cfg.Args, logger)

		// Exactly once per supervised invocation, strictly after the
		// child has exited, even when its exit code is unknown.
		client.Shutdown()

		if status.Determinate {
			return status.Code
		}
		return process.ExitCodeOSError
	}

	if cfg.Command != "" {
		// No supervision requested: replace the process image so no
		// signal proxying is needed. Does not return on success.
		if err := process.Exec(cfg.Command, cfg.Args, logger); err != nil {
			return process.ExitCodeOSError
		}
	}

	return 0
}

// awaitReady races the readiness poll against the configured deadline.
// The second return value tells the caller whether to proceed; when it
// is false the first value is the final exit code.
func awaitReady(client *admin.Client, cfg Config, logger logging.Logger) (int, bool) {
	ctx := context.Background()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	if err := client.AwaitReady(ctx, cfg.Backoff); err != nil {
		logger.Errorf("Proxy failed to become ready within %v timeout", cfg.Timeout)
		if cfg.TimeoutFatal {
			return ExitCodeUnavailable, false
		}
		// A non-fatal expiry behaves like readiness for everything
		// downstream, including supervision and shutdown notification.
	}
	return 0, true
}
