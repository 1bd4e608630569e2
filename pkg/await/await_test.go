package await

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"runtime"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test logger that implements logging.Logger interface
type TestLogger struct{}

func (l *TestLogger) Debugf(format string, args ...interface{}) {}
func (l *TestLogger) Infof(format string, args ...interface{})  {}
func (l *TestLogger) Warnf(format string, args ...interface{})  {}
func (l *TestLogger) Errorf(format string, args ...interface{}) {}

// adminCounts tracks requests seen by a fake proxy admin endpoint.
type adminCounts struct {
	ready     int32
	shutdowns int32
}

func newFakeAdmin(t *testing.T, readyStatus int) (*httptest.Server, int, *adminCounts) {
	t.Helper()

	counts := &adminCounts{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ready":
			atomic.AddInt32(&counts.ready, 1)
			w.WriteHeader(readyStatus)
		case "/shutdown":
			atomic.AddInt32(&counts.shutdowns, 1)
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	parsed, err := url.Parse(server.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(parsed.Port())
	require.NoError(t, err)

	return server, port, counts
}

func requireUnixShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test requires a Unix shell")
	}
}

func clearDisableOverride(t *testing.T) {
	t.Helper()
	t.Setenv(DisabledEnv, "")
	t.Setenv(LegacyDisabledEnv, "")
}

func TestRun_NoCommandExitsZeroWhenReady(t *testing.T) {
	clearDisableOverride(t)
	_, port, counts := newFakeAdmin(t, http.StatusOK)

	cfg := DefaultConfig()
	cfg.Port = port

	code := Run(cfg, &TestLogger{})

	assert.Equal(t, 0, code)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&counts.ready), int32(1))
	assert.Equal(t, int32(0), atomic.LoadInt32(&counts.shutdowns))
}

func TestRun_FatalTimeoutExitsUnavailable(t *testing.T) {
	clearDisableOverride(t)
	_, port, _ := newFakeAdmin(t, http.StatusServiceUnavailable)

	cfg := DefaultConfig()
	cfg.Port = port
	cfg.Backoff = 20 * time.Millisecond
	cfg.Timeout = 150 * time.Millisecond
	cfg.TimeoutFatal = true

	start := time.Now()
	code := Run(cfg, &TestLogger{})
	elapsed := time.Since(start)

	assert.Equal(t, ExitCodeUnavailable, code)
	assert.GreaterOrEqual(t, elapsed, cfg.Timeout)
	assert.Less(t, elapsed, 5*time.Second)
}

func TestRun_NonFatalTimeoutProceedsToSupervision(t *testing.T) {
	requireUnixShell(t)
	clearDisableOverride(t)
	_, port, counts := newFakeAdmin(t, http.StatusServiceUnavailable)

	cfg := DefaultConfig()
	cfg.Port = port
	cfg.Backoff = 20 * time.Millisecond
	cfg.Timeout = 150 * time.Millisecond
	cfg.TimeoutFatal = false
	cfg.Shutdown = true
	cfg.Command = "/bin/sh"
	cfg.Args = []string{"-c", "exit 3"}

	code := Run(cfg, &TestLogger{})

	assert.Equal(t, 3, code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&counts.shutdowns))
}

func TestRun_DisabledSkipsPollingButStillNotifiesShutdown(t *testing.T) {
	requireUnixShell(t)
	clearDisableOverride(t)
	t.Setenv(DisabledEnv, "manually disabled")
	_, port, counts := newFakeAdmin(t, http.StatusServiceUnavailable)

	cfg := DefaultConfig()
	cfg.Port = port
	cfg.Shutdown = true
	cfg.Command = "/bin/sh"
	cfg.Args = []string{"-c", "exit 0"}

	code := Run(cfg, &TestLogger{})

	assert.Equal(t, 0, code)
	assert.Equal(t, int32(0), atomic.LoadInt32(&counts.ready))
	assert.Equal(t, int32(1), atomic.LoadInt32(&counts.shutdowns))
}

func TestRun_PropagatesChildExitCode(t *testing.T) {
	requireUnixShell(t)
	clearDisableOverride(t)
	_, port, counts := newFakeAdmin(t, http.StatusOK)

	cfg := DefaultConfig()
	cfg.Port = port
	cfg.Shutdown = true
	cfg.Command = "/bin/sh"
	cfg.Args = []string{"-c", "exit 7"}

	code := Run(cfg, &TestLogger{})

	assert.Equal(t, 7, code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&counts.shutdowns))
}

func TestRun_SignalKilledChildMapsToOSError(t *testing.T) {
	requireUnixShell(t)
	clearDisableOverride(t)
	_, port, counts := newFakeAdmin(t, http.StatusOK)

	cfg := DefaultConfig()
	cfg.Port = port
	cfg.Shutdown = true
	cfg.Command = "/bin/sh"
	cfg.Args = []string{"-c", "kill -9 $$"}

	code := Run(cfg, &TestLogger{})

	assert.Equal(t, 71, code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&counts.shutdowns))
}

func TestRun_SpawnFailureStillNotifiesShutdown(t *testing.T) {
	clearDisableOverride(t)
	_, port, counts := newFakeAdmin(t, http.StatusOK)

	cfg := DefaultConfig()
	cfg.Port = port
	cfg.Shutdown = true
	cfg.Command = "/nonexistent/definitely-not-a-command"

	code := Run(cfg, &TestLogger{})

	assert.Equal(t, 71, code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&counts.shutdowns))
}
