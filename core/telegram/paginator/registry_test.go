package paginator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNew(t *testing.T, chatID int64) *Paginator {
	t.Helper()
	p, err := New(chatID, ints(10), WithPageSize(3))
	require.NoError(t, err)
	return p
}

func TestRegistryLookupMissing(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Lookup(Key{ChatID: 5, MessageID: 99})
	require.Error(t, err)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, int64(5), nf.ChatID)
	assert.Equal(t, 99, nf.MessageID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, ErrPaginator)
	assert.Equal(t, "paginator_not_found", nf.Code())
}

func TestRegistryLastWriterWins(t *testing.T) {
	reg := NewRegistry()
	key := Key{ChatID: 1, MessageID: 2}
	first, second := mustNew(t, 1), mustNew(t, 1)

	reg.Register(key, first)
	reg.Register(key, second)

	got, err := reg.Lookup(key)
	require.NoError(t, err)
	assert.Same(t, second, got)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryRemove(t *testing.T) {
	reg := NewRegistry()
	key := Key{ChatID: 1, MessageID: 2}
	reg.Register(key, mustNew(t, 1))

	assert.True(t, reg.Remove(key))
	assert.False(t, reg.Remove(key))
	_, err := reg.Lookup(key)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, reg.Evicted(), "explicit removal is not an eviction")
}

func TestRegistryCapacityEvictsLeastRecentlyUsed(t *testing.T) {
	reg := NewRegistry(WithCapacity(2))
	a, b, c := Key{1, 1}, Key{1, 2}, Key{1, 3}
	reg.Register(a, mustNew(t, 1))
	reg.Register(b, mustNew(t, 1))

	_, err := reg.Lookup(a)
	require.NoError(t, err)

	reg.Register(c, mustNew(t, 1))
	assert.Equal(t, 2, reg.Len())
	_, err = reg.Lookup(b)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = reg.Lookup(a)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), reg.Evicted())

	require.True(t, reg.Remove(a))
	assert.Equal(t, int64(1), reg.Evicted())
}

func TestRegistryTTLExpires(t *testing.T) {
	reg := NewRegistry(WithTTL(20 * time.Millisecond))
	key := Key{ChatID: 1, MessageID: 1}
	reg.Register(key, mustNew(t, 1))

	_, err := reg.Lookup(key)
	require.NoError(t, err)

	time.Sleep(80 * time.Millisecond)
	_, err = reg.Lookup(key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistryConcurrentStarts(t *testing.T) {
	reg := NewRegistry()
	m := newFakeMessenger(1)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(chat int64) {
			defer wg.Done()
			p, err := New(chat, ints(5), WithPageSize(2))
			if !assert.NoError(t, err) {
				return
			}
			_, err = p.Start(context.Background(), m, reg)
			assert.NoError(t, err)
		}(int64(i))
	}
	wg.Wait()
	assert.Equal(t, 50, reg.Len())
}
