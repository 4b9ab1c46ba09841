package resultstore

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(ttl time.Duration) (*Store[string], *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)}
	s := New[string](ttl)
	s.now = clock.Now
	return s, clock
}

func TestStore_TakeOnce(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	s.Save("a", "result")

	got, ok := s.Take("a")
	require.True(t, ok)
	assert.Equal(t, "result", got)

	_, ok = s.Take("a")
	assert.False(t, ok, "second take must miss")
	assert.Equal(t, 0, s.Len())
}

func TestStore_TakeUnknown(t *testing.T) {
	s, _ := newTestStore(time.Minute)

	got, ok := s.Take("missing")
	assert.False(t, ok)
	assert.Equal(t, "", got)
}

func TestStore_Expiry(t *testing.T) {
	s, clock := newTestStore(time.Minute)
	s.Save("a", "result")

	clock.Advance(time.Minute)

	_, ok := s.Take("a")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len(), "expired entry is removed on take")
}

func TestStore_Prune(t *testing.T) {
	s, clock := newTestStore(time.Minute)
	s.Save("old-1", "x")
	s.Save("old-2", "y")

	clock.Advance(30 * time.Second)
	s.Save("fresh", "z")

	clock.Advance(45 * time.Second)
	assert.Equal(t, 2, s.Prune())
	assert.Equal(t, 1, s.Len())

	got, ok := s.Take("fresh")
	require.True(t, ok)
	assert.Equal(t, "z", got)
}

func TestStore_SaveReplaces(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	s.Save("a", "first")
	s.Save("a", "second")

	got, ok := s.Take("a")
	require.True(t, ok)
	assert.Equal(t, "second", got)
}

func TestStore_Concurrent(t *testing.T) {
	s := New[int](time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Save(fmt.Sprint(i), i)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, s.Len())

	var (
		mu    sync.Mutex
		taken int
	)
	for i := 0; i < 50; i++ {
		for j := 0; j < 2; j++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if _, ok := s.Take(fmt.Sprint(i)); ok {
					mu.Lock()
					taken++
					mu.Unlock()
				}
			}(i)
		}
	}
	wg.Wait()
	assert.Equal(t, 50, taken, "each result is handed out exactly once")
}
