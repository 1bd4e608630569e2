package admin

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/core-tools/hsu-proxy-await/pkg/errors"
	"github.com/core-tools/hsu-proxy-await/pkg/logging"
)

// attemptTimeout bounds each individual readiness request. It is
// independent of the overall deadline the caller may impose via context.
const attemptTimeout = 5 * time.Second

// Client talks to the proxy admin endpoint on localhost. The authority
// is resolved once from the configured port and reused for both the
// readiness and the shutdown URI.
type Client struct {
	authority string
	client    *http.Client
	logger    logging.Logger
}

func NewClient(port int, logger logging.Logger) *Client {
	return &Client{
		authority: fmt.Sprintf("localhost:%d", port),
		client: &http.Client{
			Timeout: attemptTimeout,
		},
		logger: logger,
	}
}

func (c *Client) readyURL() string {
	return fmt.Sprintf("http://%s/ready", c.authority)
}

func (c *Client) shutdownURL() string {
	return fmt.Sprintf("http://%s/shutdown", c.authority)
}

// AwaitReady polls the readiness endpoint until it reports success.
// Any connection error, non-2xx status or per-attempt timeout counts as
// "not ready yet" and is retried after a constant backoff; there is no
// attempt limit. The loop ends only on readiness (nil) or when ctx is
// done (ctx.Err()), which is how the caller races it against a deadline.
func (c *Client) AwaitReady(ctx context.Context, backoff time.Duration) error {
	url := c.readyURL()

	for attempt := 1; ; attempt++ {
		ready, detail := c.checkReady(ctx, url)
		if ready {
			c.logger.Debugf("Proxy is ready, authority: %s, attempts: %d", c.authority, attempt)
			return nil
		}
		if ctx.Err() != nil {
			return c.awaitAborted(ctx)
		}

		c.logger.Debugf("Proxy not ready, authority: %s, attempt: %d, detail: %s", c.authority, attempt, detail)

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return c.awaitAborted(ctx)
		}
	}
}

// awaitAborted translates a done context into the poller's error. A hit
// deadline becomes a timeout error; plain cancellation passes through.
func (c *Client) awaitAborted(ctx context.Context) error {
	err := ctx.Err()
	if err == context.DeadlineExceeded {
		return errors.NewTimeoutError("proxy did not become ready before the deadline", err).WithContext("authority", c.authority)
	}
	return err
}

func (c *Client) checkReady(ctx context.Context, url string) (bool, string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Sprintf("failed to create request: %v", err)
	}

	rsp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Sprintf("request failed: %v", err)
	}
	defer rsp.Body.Close()

	if rsp.StatusCode >= 200 && rsp.StatusCode < 300 {
		return true, rsp.Status
	}
	return false, fmt.Sprintf("status: %s", rsp.Status)
}

// Shutdown issues a single POST to the proxy shutdown endpoint after the
// supervised child has exited. The outcome is deliberately discarded:
// no retry and no error propagation is intended here, and the final exit
// code must never depend on whether the proxy accepted the request.
func (c *Client) Shutdown() {
	rsp, err := c.client.Post(c.shutdownURL(), "", http.NoBody)
	if err != nil {
		c.logger.Debugf("Proxy shutdown request failed, authority: %s, error: %v", c.authority, err)
		return
	}
	rsp.Body.Close()
	c.logger.Debugf("Proxy shutdown requested, authority: %s, status: %s", c.authority, rsp.Status)
}
