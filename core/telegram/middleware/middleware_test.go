package middleware

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

func offlineBot(t *testing.T) *tele.Bot {
	t.Helper()
	b, err := tele.NewBot(tele.Settings{Offline: true, Synchronous: true})
	require.NoError(t, err)
	return b
}

func messageFrom(b *tele.Bot, updateID int, userID int64) tele.Context {
	return b.NewContext(tele.Update{
		ID: updateID,
		Message: &tele.Message{
			ID:     updateID,
			Sender: &tele.User{ID: userID},
			Chat:   &tele.Chat{ID: userID, Type: tele.ChatPrivate},
			Text:   "/products",
		},
	})
}

func callbackFrom(b *tele.Bot, updateID int, userID int64) tele.Context {
	return b.NewContext(tele.Update{
		ID: updateID,
		Callback: &tele.Callback{
			ID:      "cb",
			Sender:  &tele.User{ID: userID},
			Message: &tele.Message{ID: 10, Chat: &tele.Chat{ID: userID}},
			Data:    "\fpaginator_open_page|1",
		},
	})
}

func TestRateLimitDropsBurst(t *testing.T) {
	b := offlineBot(t)
	calls, limited := 0, 0
	mw := RateLimitMiddleware(RateLimitOptions{
		Interval: time.Minute,
		OnLimited: func(tele.Context) error {
			limited++
			return nil
		},
	})
	h := mw(func(tele.Context) error {
		calls++
		return nil
	})

	require.NoError(t, h(messageFrom(b, 1, 7)))
	require.NoError(t, h(messageFrom(b, 2, 7)))
	require.NoError(t, h(messageFrom(b, 3, 8)))

	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, limited)
}

func TestRateLimitExcludesCallbacks(t *testing.T) {
	b := offlineBot(t)
	calls := 0
	mw := RateLimitMiddleware(RateLimitOptions{
		Interval: time.Minute,
		Exclude:  map[string]struct{}{"callback": {}},
	})
	h := mw(func(tele.Context) error {
		calls++
		return nil
	})

	for i := 0; i < 3; i++ {
		require.NoError(t, h(callbackFrom(b, i+1, 7)))
	}
	assert.Equal(t, 3, calls)
}

func TestAdminOnly(t *testing.T) {
	b := offlineBot(t)
	rejected := 0
	mw := AdminOnlyMiddleware(AdminOptions{
		AdminID: 1,
		OnReject: func(tele.Context) error {
			rejected++
			return nil
		},
	})
	passed := 0
	h := mw(func(tele.Context) error {
		passed++
		return nil
	})

	require.NoError(t, h(messageFrom(b, 1, 1)))
	require.NoError(t, h(messageFrom(b, 2, 2)))
	assert.Equal(t, 1, passed)
	assert.Equal(t, 1, rejected)
}

func TestRecoverConvertsPanic(t *testing.T) {
	b := offlineBot(t)
	h := RecoverMiddleware(func(tele.Context) error { panic("boom") })

	err := h(messageFrom(b, 1, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	sentinel := errors.New("plain")
	h = RecoverMiddleware(func(tele.Context) error { return sentinel })
	assert.ErrorIs(t, h(messageFrom(b, 2, 1)), sentinel)
}

func TestRecordMessageCounters(t *testing.T) {
	b := offlineBot(t)
	c := callbackFrom(b, 1, 1)
	h := MessageMetricsMiddleware(func(c tele.Context) error {
		RecordMessage(c, true)
		RecordMessage(c, false)
		return nil
	})
	require.NoError(t, h(c))

	msgs, kb := GetCounters(c)
	assert.Equal(t, 2, msgs)
	assert.True(t, kb)
}

func TestLoggerMiddlewareStoresRID(t *testing.T) {
	b := offlineBot(t)
	c := messageFrom(b, 77, 5)
	h := LoggerMiddleware(func(c tele.Context) error { return nil })
	require.NoError(t, h(c))

	rid, _ := c.Get("rid").(string)
	assert.NotEmpty(t, rid)
	_, stored := c.Get("update_start").(time.Time)
	assert.True(t, stored)
}
