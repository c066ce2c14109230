package catalog

import (
	"context"
	"sync"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/tgpaginator/core/telegram/paginator"
)

type pageCall struct {
	Edit      bool
	ChatID    int64
	MessageID int
	Msg       paginator.Message
}

type recordingMessenger struct {
	mu     sync.Mutex
	nextID int
	calls  []pageCall
}

func (m *recordingMessenger) Send(_ context.Context, chatID int64, msg paginator.Message) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.calls = append(m.calls, pageCall{ChatID: chatID, MessageID: m.nextID, Msg: msg})
	return m.nextID, nil
}

func (m *recordingMessenger) Edit(_ context.Context, chatID int64, messageID int, msg paginator.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, pageCall{Edit: true, ChatID: chatID, MessageID: messageID, Msg: msg})
	return nil
}

type sent struct {
	What interface{}
	Opts []interface{}
	Edit bool
}

// fakeContext covers what the catalog handlers call on tele.Context.
type fakeContext struct {
	tele.Context

	update  tele.Update
	store   map[string]interface{}
	sent    []sent
	answers []*tele.CallbackResponse
}

func commandContext(chatID int64, text string) *fakeContext {
	return &fakeContext{
		update: tele.Update{ID: 1, Message: &tele.Message{
			ID:     1,
			Sender: &tele.User{ID: chatID},
			Chat:   &tele.Chat{ID: chatID},
			Text:   text,
		}},
		store: map[string]interface{}{},
	}
}

func callbackContext(chatID int64, messageID int, data string) *fakeContext {
	return &fakeContext{
		update: tele.Update{ID: 2, Callback: &tele.Callback{
			ID:      "q",
			Sender:  &tele.User{ID: chatID},
			Message: &tele.Message{ID: messageID, Chat: &tele.Chat{ID: chatID}},
			Data:    data,
		}},
		store: map[string]interface{}{},
	}
}

func (f *fakeContext) Update() tele.Update      { return f.update }
func (f *fakeContext) Callback() *tele.Callback { return f.update.Callback }

func (f *fakeContext) Sender() *tele.User {
	if f.update.Callback != nil {
		return f.update.Callback.Sender
	}
	return f.update.Message.Sender
}

func (f *fakeContext) Chat() *tele.Chat {
	if f.update.Callback != nil {
		return f.update.Callback.Message.Chat
	}
	return f.update.Message.Chat
}

func (f *fakeContext) Get(key string) interface{}    { return f.store[key] }
func (f *fakeContext) Set(key string, v interface{}) { f.store[key] = v }

func (f *fakeContext) Send(what interface{}, opts ...interface{}) error {
	f.sent = append(f.sent, sent{What: what, Opts: opts})
	return nil
}

func (f *fakeContext) Edit(what interface{}, opts ...interface{}) error {
	f.sent = append(f.sent, sent{What: what, Opts: opts, Edit: true})
	return nil
}

func (f *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	var r *tele.CallbackResponse
	if len(resp) > 0 {
		r = resp[0]
	}
	f.answers = append(f.answers, r)
	return nil
}
