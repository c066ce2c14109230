package paginator

import (
	"context"
	"testing"

	tg "github.com/m3rciful/tgpaginator/core/telegram"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

type fakeAPI struct {
	sentTo   tele.Recipient
	edited   tele.Editable
	what     interface{}
	opts     []interface{}
	returnID int
	edits    int
	editErr  error
}

func (f *fakeAPI) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	f.sentTo, f.what, f.opts = to, what, opts
	return &tele.Message{ID: f.returnID}, nil
}

func (f *fakeAPI) Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error) {
	f.edits++
	f.edited, f.what, f.opts = msg, what, opts
	if f.editErr != nil {
		return nil, f.editErr
	}
	return &tele.Message{}, nil
}

func TestTeleMessengerSend(t *testing.T) {
	api := &fakeAPI{returnID: 77}
	msg := Message{
		Text:           "hello",
		ParseMode:      "Markdown",
		Keyboard:       Keyboard{{{Text: "»", Data: PageData(1)}}},
		DisablePreview: true,
	}

	id, err := NewTeleMessenger(api).Send(context.Background(), 42, msg)
	require.NoError(t, err)
	assert.Equal(t, 77, id)
	assert.Equal(t, "42", api.sentTo.Recipient())
	assert.Equal(t, "hello", api.what)

	require.Len(t, api.opts, 2)
	opts, ok := api.opts[0].(*tele.SendOptions)
	require.True(t, ok)
	assert.Equal(t, tele.ModeMarkdown, opts.ParseMode)
	require.NotNil(t, opts.ReplyMarkup)
	assert.Equal(t, PageData(1), opts.ReplyMarkup.InlineKeyboard[0][0].Data)
	assert.Equal(t, tele.NoPreview, api.opts[1])
}

func TestTeleMessengerEdit(t *testing.T) {
	api := &fakeAPI{}
	err := NewTeleMessenger(api).Edit(context.Background(), 42, 9, Message{Text: "x"})
	require.NoError(t, err)

	msgID, chatID := api.edited.MessageSig()
	assert.Equal(t, "9", msgID)
	assert.Equal(t, int64(42), chatID)
	assert.Len(t, api.opts, 1)
}

func TestEventFromCallback(t *testing.T) {
	_, ok := EventFromCallback(nil)
	assert.False(t, ok)
	_, ok = EventFromCallback(&tele.Callback{MessageID: "inline"})
	assert.False(t, ok)

	ev, ok := EventFromCallback(&tele.Callback{
		Sender:  &tele.User{ID: 3},
		Message: &tele.Message{ID: 15, Chat: &tele.Chat{ID: -100}},
		Data:    PageData(4),
	})
	require.True(t, ok)
	assert.Equal(t, CallbackEvent{UserID: 3, ChatID: -100, MessageID: 15, Data: PageData(4)}, ev)
}

func TestMarkupMirrorsKeyboard(t *testing.T) {
	kb := Keyboard{
		{{Text: "a", Data: "1"}, {Text: "b", Data: "2"}},
		{{Text: "•", Data: NoopData()}},
	}
	markup := Markup(kb)
	require.Len(t, markup.InlineKeyboard, 2)
	assert.Equal(t, "b", markup.InlineKeyboard[0][1].Text)
	assert.Equal(t, NoopData(), markup.InlineKeyboard[1][0].Data)
}

// teleBot exposes fakeAPI through the full tele.API interface.
type teleBot struct {
	tele.API
	fake *fakeAPI
}

func (b teleBot) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	return b.fake.Send(to, what, opts...)
}

func (b teleBot) Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error) {
	return b.fake.Edit(msg, what, opts...)
}

// clickContext is a callback update delivered to a handler.
type clickContext struct {
	tele.Context
	update  tele.Update
	bot     teleBot
	store   map[string]interface{}
	answers []*tele.CallbackResponse
}

func newClickContext(api *fakeAPI, chatID int64, messageID int, data string) *clickContext {
	return &clickContext{
		update: tele.Update{ID: 11, Callback: &tele.Callback{
			ID:      "cb",
			Sender:  &tele.User{ID: chatID},
			Message: &tele.Message{ID: messageID, Chat: &tele.Chat{ID: chatID}},
			Data:    data,
		}},
		bot:   teleBot{fake: api},
		store: make(map[string]interface{}),
	}
}

func (c *clickContext) Update() tele.Update             { return c.update }
func (c *clickContext) Callback() *tele.Callback        { return c.update.Callback }
func (c *clickContext) Chat() *tele.Chat                { return c.update.Callback.Message.Chat }
func (c *clickContext) Sender() *tele.User              { return c.update.Callback.Sender }
func (c *clickContext) Bot() tele.API                   { return c.bot }
func (c *clickContext) Get(key string) interface{}      { return c.store[key] }
func (c *clickContext) Set(key string, val interface{}) { c.store[key] = val }

func (c *clickContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) == 0 {
		c.answers = append(c.answers, nil)
		return nil
	}
	c.answers = append(c.answers, resp[0])
	return nil
}

func startedPaginator(t *testing.T, reg *Registry, api *fakeAPI) *Paginator {
	t.Helper()
	p, err := New(8, ints(15), WithPageSize(4))
	require.NoError(t, err)
	api.returnID = 40
	_, err = p.Start(context.Background(), NewTeleMessenger(api), reg)
	require.NoError(t, err)
	return p
}

func TestHandlerAnswersExpiredPaginator(t *testing.T) {
	api := &fakeAPI{}
	h := NewRouter(NewRegistry()).Handler(HandlerOptions{ExpiredText: "Gone"})

	c := newClickContext(api, 8, 99, PageData(1))
	require.NoError(t, h(c))

	require.Len(t, c.answers, 1)
	require.NotNil(t, c.answers[0])
	assert.Equal(t, "Gone", c.answers[0].Text)
	assert.True(t, c.answers[0].ShowAlert)
	assert.Zero(t, api.edits)
}

func TestHandlerDefaultExpiredText(t *testing.T) {
	h := NewRouter(NewRegistry()).Handler(HandlerOptions{})
	c := newClickContext(&fakeAPI{}, 8, 99, PageData(1))
	require.NoError(t, h(c))
	require.Len(t, c.answers, 1)
	assert.Equal(t, DefaultExpiredText, c.answers[0].Text)
}

func TestHandlerTurnsPageAndAnswers(t *testing.T) {
	api := &fakeAPI{}
	reg := NewRegistry()
	p := startedPaginator(t, reg, api)
	h := NewRouter(reg).Handler(HandlerOptions{})

	c := newClickContext(api, 8, 40, PageData(1))
	require.NoError(t, h(c))

	assert.Equal(t, 1, api.edits)
	assert.Equal(t, 1, p.CurrentPage())
	msgID, chatID := api.edited.MessageSig()
	assert.Equal(t, "40", msgID)
	assert.Equal(t, int64(8), chatID)
	assert.Equal(t, []*tele.CallbackResponse{nil}, c.answers)
}

func TestHandlerReturnsMalformedPage(t *testing.T) {
	api := &fakeAPI{}
	reg := NewRegistry()
	p := startedPaginator(t, reg, api)
	h := NewRouter(reg).Handler(HandlerOptions{})

	c := newClickContext(api, 8, 40, "\fpaginator_open_page|zz")
	err := h(c)
	assert.ErrorIs(t, err, ErrCallbackData)
	assert.Zero(t, api.edits)
	assert.Empty(t, c.answers)
	assert.Equal(t, 0, p.CurrentPage())
}

func TestHandlerTreatsUnchangedMessageAsSuccess(t *testing.T) {
	api := &fakeAPI{}
	reg := NewRegistry()
	p := startedPaginator(t, reg, api)
	h := NewRouter(reg).Handler(HandlerOptions{})

	api.editErr = tele.ErrSameMessageContent
	c := newClickContext(api, 8, 40, PageData(0))
	require.NoError(t, h(c))

	assert.Equal(t, 1, api.edits)
	assert.Equal(t, 0, p.CurrentPage())
	assert.Equal(t, []*tele.CallbackResponse{nil}, c.answers)
}

func TestBindRegistersNavigationAndNoop(t *testing.T) {
	api := &fakeAPI{}
	reg := NewRegistry()
	p := startedPaginator(t, reg, api)
	bot := tg.NewRegistry()
	require.NoError(t, NewRouter(reg).Bind(bot, HandlerOptions{}))

	assert.Equal(t, []string{NoopKey, RouteKey}, bot.ListCallbacks())

	nav, ok := bot.GetCallback(RouteKey)
	require.True(t, ok)
	require.NoError(t, nav(newClickContext(api, 8, 40, PageData(2))))
	assert.Equal(t, 2, p.CurrentPage())

	noop, ok := bot.GetCallback(NoopKey)
	require.True(t, ok)
	c := newClickContext(api, 8, 40, NoopData())
	require.NoError(t, noop(c))
	assert.Equal(t, []*tele.CallbackResponse{nil}, c.answers)
	assert.Equal(t, 1, api.edits, "inert buttons never edit")

	assert.ErrorIs(t, NewRouter(reg).Bind(bot, HandlerOptions{}), tg.ErrDuplicate)
}
