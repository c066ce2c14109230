package telegram

import (
	"strings"
	"time"

	coreconfig "github.com/m3rciful/tgpaginator/core/config"
	"github.com/m3rciful/tgpaginator/core/telegram/callbacks"
	"github.com/m3rciful/tgpaginator/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// RateLimitedText answers button clicks dropped by the rate limiter.
const RateLimitedText = "Too many requests, slow down"

// DefaultMiddlewares builds the shared middleware chain: recover, the rate
// limit when rate_limit.interval_ms is set, update logging and counters.
// A nil onLimited answers dropped callbacks with RateLimitedText so the
// client stops its loading indicator.
func DefaultMiddlewares(cfg *coreconfig.Config, onLimited tele.HandlerFunc) []Middleware {
	mws := []Middleware{
		{Name: "recover", Use: middleware.RecoverMiddleware},
	}
	if rl, ok := rateLimit(cfg, onLimited); ok {
		mws = append(mws, rl)
	}
	return append(mws,
		Middleware{Name: "logger", Use: middleware.LoggerMiddleware},
		Middleware{Name: "metrics", Use: middleware.MessageMetricsMiddleware},
	)
}

func rateLimit(cfg *coreconfig.Config, onLimited tele.HandlerFunc) (Middleware, bool) {
	if cfg == nil || cfg.RateLimit.IntervalMS <= 0 {
		return Middleware{}, false
	}
	exclude := make(map[string]struct{}, len(cfg.RateLimit.ExcludeUpdates))
	for _, t := range cfg.RateLimit.ExcludeUpdates {
		exclude[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	if onLimited == nil {
		onLimited = answerRateLimited
	}
	return Middleware{
		Name: "rate_limit",
		Use: middleware.RateLimitMiddleware(middleware.RateLimitOptions{
			Interval:  time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond,
			Exclude:   exclude,
			OnLimited: onLimited,
		}),
	}, true
}

func answerRateLimited(c tele.Context) error {
	if c.Callback() == nil {
		return nil
	}
	return callbacks.Answer(c, &tele.CallbackResponse{Text: RateLimitedText})
}
