package paginator

import (
	"context"
	"errors"
	"sync"
)

type sentCall struct {
	ChatID int64
	Msg    Message
}

type editCall struct {
	ChatID    int64
	MessageID int
	Msg       Message
}

// fakeMessenger records outbound calls and hands out increasing message ids.
type fakeMessenger struct {
	mu     sync.Mutex
	nextID int
	sends  []sentCall
	edits  []editCall
	err    error
}

func newFakeMessenger(firstID int) *fakeMessenger {
	return &fakeMessenger{nextID: firstID}
}

func (f *fakeMessenger) Send(_ context.Context, chatID int64, msg Message) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.sends = append(f.sends, sentCall{ChatID: chatID, Msg: msg})
	id := f.nextID
	f.nextID++
	return id, nil
}

func (f *fakeMessenger) Edit(_ context.Context, chatID int64, messageID int, msg Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.edits = append(f.edits, editCall{ChatID: chatID, MessageID: messageID, Msg: msg})
	return nil
}

func (f *fakeMessenger) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sends) + len(f.edits)
}

func (f *fakeMessenger) lastEdit() editCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.edits[len(f.edits)-1]
}

var errTransport = errors.New("transport: connection reset")

func ints(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = i
	}
	return out
}
