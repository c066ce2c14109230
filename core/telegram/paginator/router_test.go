package paginator

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteUnknownMessageFailsWithoutCalls(t *testing.T) {
	rt := NewRouter(NewRegistry())
	m := newFakeMessenger(1)

	_, err := rt.Route(context.Background(), m, CallbackEvent{
		UserID: 5, ChatID: 5, MessageID: 99, Data: PageData(1),
	})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, Key{ChatID: 5, MessageID: 99}, Key{ChatID: nf.ChatID, MessageID: nf.MessageID})
	assert.Zero(t, m.calls())
}

func TestRouteNavigatesRegisteredPaginator(t *testing.T) {
	reg := NewRegistry()
	rt := NewRouter(reg)
	m := newFakeMessenger(40)

	p, err := New(8, ints(15), WithPageSize(4))
	require.NoError(t, err)
	_, err = p.Start(context.Background(), m, reg)
	require.NoError(t, err)

	ref, err := rt.Route(context.Background(), m, CallbackEvent{
		UserID: 8, ChatID: 8, MessageID: 40, Data: PageData(2),
	})
	require.NoError(t, err)
	assert.Equal(t, MessageRef{ChatID: 8, MessageID: 40}, ref)
	assert.Equal(t, 2, p.CurrentPage())
	assert.Equal(t, 40, m.lastEdit().MessageID)
	assert.Equal(t, " 3 / 4", m.lastEdit().Msg.Keyboard[0][1].Text)
}

func TestRouteRejectsMalformedData(t *testing.T) {
	reg := NewRegistry()
	rt := NewRouter(reg)
	m := newFakeMessenger(1)
	p, err := New(8, ints(15), WithPageSize(4))
	require.NoError(t, err)
	_, err = p.Start(context.Background(), m, reg)
	require.NoError(t, err)

	_, err = rt.Route(context.Background(), m, CallbackEvent{ChatID: 8, MessageID: 1, Data: "\fpaginator_open_page|x"})
	assert.ErrorIs(t, err, ErrCallbackData)
	assert.Equal(t, 1, m.calls(), "only the initial send is expected")
	assert.Equal(t, 0, p.CurrentPage())
}

func TestRoutePropagatesEditError(t *testing.T) {
	reg := NewRegistry()
	rt := NewRouter(reg)
	m := newFakeMessenger(1)
	p, err := New(8, ints(15), WithPageSize(4))
	require.NoError(t, err)
	_, err = p.Start(context.Background(), m, reg)
	require.NoError(t, err)

	m.err = errTransport
	_, err = rt.Route(context.Background(), m, CallbackEvent{ChatID: 8, MessageID: 1, Data: PageData(1)})
	assert.Same(t, errTransport, err)
	assert.Equal(t, 0, p.CurrentPage(), "a failed edit keeps the shown page")

	m.err = nil
	_, err = rt.Route(context.Background(), m, CallbackEvent{ChatID: 8, MessageID: 1, Data: PageData(1)})
	require.NoError(t, err)
	assert.Equal(t, 1, p.CurrentPage())
}

func TestConcurrentClicksSerializeRenders(t *testing.T) {
	reg := NewRegistry()
	rt := NewRouter(reg)
	m := newFakeMessenger(1)
	p, err := New(8, ints(40), WithPageSize(4))
	require.NoError(t, err)
	_, err = p.Start(context.Background(), m, reg)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for page := 0; page < 10; page++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			_, err := rt.Route(context.Background(), m, CallbackEvent{ChatID: 8, MessageID: 1, Data: PageData(page)})
			assert.NoError(t, err)
		}(page)
	}
	wg.Wait()

	last := m.lastEdit()
	want, err := p.Render()
	require.NoError(t, err)
	assert.Equal(t, want, last.Msg, "the last edit must match the final state")
}
