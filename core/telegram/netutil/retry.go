package netutil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// ShouldRetry reports whether err is a transient transport failure: a dial
// error, a timeout or a reset connection. Telegram API errors are never retried.
func ShouldRetry(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Backoff returns the linear delay before the given retry attempt (1-based).
func Backoff(base time.Duration, attempt int) time.Duration {
	if base <= 0 || attempt <= 0 {
		return 0
	}
	return base * time.Duration(attempt)
}

// floodBody is the part of a Telegram 429 response naming the wait.
type floodBody struct {
	Parameters struct {
		RetryAfter int `json:"retry_after"`
	} `json:"parameters"`
}

// RetryAfter reports how long Telegram asks to wait before repeating a
// request answered with 429 Too Many Requests. It reads the Retry-After
// header, then parameters.retry_after from the body; the body stays readable.
func RetryAfter(resp *http.Response) (time.Duration, bool) {
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		return 0, false
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(resp.Header.Get("Retry-After"))); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second, true
	}
	if resp.Body == nil {
		return 0, false
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(data))
	if err != nil {
		return 0, false
	}
	var body floodBody
	if json.Unmarshal(data, &body) != nil || body.Parameters.RetryAfter <= 0 {
		return 0, false
	}
	return time.Duration(body.Parameters.RetryAfter) * time.Second, true
}
