package router

import (
	"log/slog"
	"time"

	tg "github.com/m3rciful/tgpaginator/core/telegram"
	"github.com/m3rciful/tgpaginator/core/telegram/callbacks"
	"github.com/m3rciful/tgpaginator/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// CallbackOptions customises fallback behaviour for callbacks.
type CallbackOptions struct {
	NotFound tele.HandlerFunc
}

// CallbackRoute returns a handler that routes callbacks through the registry
// by the key encoded in their data. Handlers may answer the query themselves
// via callbacks.Answer; otherwise an empty answer is sent afterwards so the
// client stops its loading indicator.
func CallbackRoute(reg *tg.Registry, opts CallbackOptions) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		if c.Callback() == nil {
			return nil
		}

		key, _ := callbacks.ParseCallbackData(c.Callback())
		name := "callback." + normalizeHandlerName(key)
		extras := []slog.Attr{slog.String("cb_key", key)}

		run := func(h tele.HandlerFunc) func() error {
			return func() error {
				var err error
				if h != nil {
					err = h(c)
				}
				if !callbacks.Answered(c) {
					_ = c.Respond()
				}
				return err
			}
		}

		cbHandler, ok := reg.GetCallback(key)
		if !ok || cbHandler == nil {
			fallback := reg.CallbackNotFound()
			if fallback == nil {
				fallback = opts.NotFound
			}
			extras = append(extras, slog.String("reason", "not_found"))
			return handleWithSummary(c, name, start, "", "", run(fallback), extras...)
		}

		return handleWithSummary(c, name, start, "", "", run(cbHandler), extras...)
	}
	return tg.Route{
		Endpoint: tele.OnCallback,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}
