package await

import "os"

// Environment variables that disable the readiness wait. Checked in
// order; the first non-empty value wins and becomes the reported reason.
// PROXY_DISABLED is the legacy name, kept for deployments that predate
// the PROXY_AWAIT_ prefix.
const (
	DisabledEnv       = "PROXY_AWAIT_DISABLED"
	LegacyDisabledEnv = "PROXY_DISABLED"
)

// DisabledReason reports whether the readiness wait is disabled via the
// environment. Disabling skips polling and the deadline, but not the
// shutdown notification after a supervised child exits.
func DisabledReason() (string, bool) {
	for _, key := range []string{DisabledEnv, LegacyDisabledEnv} {
		if value := os.Getenv(key); value != "" {
			return value, true
		}
	}
	return "", false
}
