package telegram

import (
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"path"
	"time"

	"github.com/m3rciful/tgpaginator/core/logger"
	"github.com/m3rciful/tgpaginator/core/telegram/netutil"
)

const (
	defaultDialTimeout       = 5 * time.Second
	defaultTLSHandshake      = 5 * time.Second
	defaultIdleConnTimeout   = 30 * time.Second
	defaultResponseTimeout   = 5 * time.Second
	defaultClientTimeout     = 30 * time.Second
	defaultKeepAliveInterval = 30 * time.Second
	defaultRetryAttempts     = 3
	defaultRetryBackoff      = 500 * time.Millisecond
	defaultMaxFloodWait      = 5 * time.Second
)

// BuildHTTPClient returns an HTTP client tuned for Telegram API calls. Dial
// failures and timeouts are retried at the transport level so a page edit is
// not lost to a single dropped connection.
func BuildHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: defaultDialTimeout, KeepAlive: defaultKeepAliveInterval}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       defaultIdleConnTimeout,
		TLSHandshakeTimeout:   defaultTLSHandshake,
		ResponseHeaderTimeout: defaultResponseTimeout,
		ExpectContinueTimeout: 1 * time.Second,
	}

	retry := &retryTransport{
		base:         transport,
		maxRetries:   defaultRetryAttempts,
		backoff:      defaultRetryBackoff,
		maxFloodWait: defaultMaxFloodWait,
	}

	return &http.Client{
		Timeout:   defaultClientTimeout,
		Transport: retry,
	}
}

// retryTransport repeats requests that failed in the network, and requests
// answered with a short 429 flood wait. Longer waits reach the caller.
type retryTransport struct {
	base         http.RoundTripper
	maxRetries   int
	backoff      time.Duration
	maxFloodWait time.Duration
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	attempts := t.maxRetries + 1
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		currReq := req
		if attempt > 1 {
			currReq = req.Clone(req.Context())
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, err
				}
				currReq.Body = body
			} else if req.Body != nil && req.Body != http.NoBody {
				// a consumed body cannot be replayed
				return nil, lastErr
			}
		}

		resp, err := base.RoundTrip(currReq)
		if err == nil {
			wait, flood := netutil.RetryAfter(resp)
			if !flood || wait > t.maxFloodWait || attempt == attempts || !replayable(req) {
				return resp, nil
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			lastErr = errFloodWait
			if err := t.wait(req, attempt, wait, lastErr); err != nil {
				return nil, err
			}
			continue
		}
		lastErr = err
		if !netutil.ShouldRetry(err) || attempt == attempts {
			break
		}
		if err := t.wait(req, attempt, netutil.Backoff(t.backoff, attempt), err); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

var errFloodWait = errors.New("telegram: too many requests")

func replayable(req *http.Request) bool {
	return req.Body == nil || req.Body == http.NoBody || req.GetBody != nil
}

// wait logs the retry and sleeps for delay unless the request is canceled.
func (t *retryTransport) wait(req *http.Request, attempt int, delay time.Duration, cause error) error {
	logger.Warn(req.Context(), "tg", "http.retry",
		slog.String("op", path.Base(req.URL.Path)),
		slog.Bool("retryable", true),
		slog.Int("attempts", attempt),
		slog.Int64("backoff_ms", delay.Milliseconds()),
		slog.String("err", logger.SanitizeLimit(cause.Error(), 256)),
	)
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-req.Context().Done():
		return req.Context().Err()
	case <-timer.C:
		return nil
	}
}
