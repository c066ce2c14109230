package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/m3rciful/tgpaginator/core/config"
	"github.com/m3rciful/tgpaginator/core/telegram/callbacks"
)

func middlewareNames(mws []Middleware) []string {
	names := make([]string, 0, len(mws))
	for _, mw := range mws {
		names = append(names, mw.Name)
	}
	return names
}

func TestDefaultMiddlewaresOrder(t *testing.T) {
	assert.Equal(t, []string{"recover", "logger", "metrics"}, middlewareNames(DefaultMiddlewares(nil, nil)))

	cfg := &coreconfig.Config{RateLimit: coreconfig.RateLimitConfig{IntervalMS: 500}}
	assert.Equal(t, []string{"recover", "rate_limit", "logger", "metrics"}, middlewareNames(DefaultMiddlewares(cfg, nil)))
}

type limitedContext struct {
	tele.Context
	cb      *tele.Callback
	store   map[string]interface{}
	answers []*tele.CallbackResponse
}

func (c *limitedContext) Callback() *tele.Callback      { return c.cb }
func (c *limitedContext) Get(key string) interface{}    { return c.store[key] }
func (c *limitedContext) Set(key string, v interface{}) { c.store[key] = v }

func (c *limitedContext) Respond(resp ...*tele.CallbackResponse) error {
	c.answers = append(c.answers, resp...)
	return nil
}

func TestAnswerRateLimitedOnlyAnswersCallbacks(t *testing.T) {
	msg := &limitedContext{store: map[string]interface{}{}}
	require.NoError(t, answerRateLimited(msg))
	assert.Empty(t, msg.answers)

	click := &limitedContext{cb: &tele.Callback{ID: "1"}, store: map[string]interface{}{}}
	require.NoError(t, answerRateLimited(click))
	require.Len(t, click.answers, 1)
	assert.Equal(t, RateLimitedText, click.answers[0].Text)
	assert.True(t, callbacks.Answered(click))
}
