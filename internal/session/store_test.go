package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestAcquireCreatesMainState(t *testing.T) {
	s := NewStore(time.Hour)

	l := s.Acquire("a")
	assert.Equal(t, State{Kind: Main}, l.State())
	assert.False(t, l.State().Pending())
	l.Set(State{Kind: AwaitingForm, Form: "add_device"})
	l.Release()
	l.Release()

	st, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, AwaitingForm, st.Kind)
	assert.True(t, st.Pending())

	_, ok = s.Get("b")
	assert.False(t, ok)
}

func TestSessionsAreIsolated(t *testing.T) {
	s := NewStore(time.Hour)

	a := s.Acquire("a")
	a.Set(State{Kind: AwaitingDeviceSearch})

	b := s.Acquire("b")
	assert.Equal(t, Main, b.State().Kind)
	b.Release()
	a.Release()
}

func TestAcquireSerializesSameSession(t *testing.T) {
	s := NewStore(time.Hour)

	var (
		mu      sync.Mutex
		active  int
		maxSeen int
	)

	var g errgroup.Group
	for i := 0; i < 20; i++ {
		g.Go(func() error {
			l := s.Acquire("shared")
			defer l.Release()

			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, 1, maxSeen)
}

func TestSweepRemovesIdleSessions(t *testing.T) {
	s := NewStore(time.Minute)
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Acquire("old").Release()
	busy := s.Acquire("busy")

	now = now.Add(2 * time.Minute)
	s.Acquire("fresh").Release()

	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 2, s.Len())
	_, ok := s.Get("old")
	assert.False(t, ok)

	busy.Release()
}

func TestSweepDisabled(t *testing.T) {
	s := NewStore(0)
	s.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	s.Acquire("a").Release()
	s.now = time.Now
	assert.Zero(t, s.Sweep())
}

func TestDelete(t *testing.T) {
	s := NewStore(time.Hour)
	l := s.Acquire("a")
	l.Set(State{Kind: AwaitingForm, Form: "create_merchant"})
	l.Release()

	s.Delete("a")
	assert.Zero(t, s.Len())
}

func TestRunStopsOnCancel(t *testing.T) {
	s := NewStore(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Run(ctx, 5*time.Millisecond) })

	time.Sleep(20 * time.Millisecond)
	cancel()
	assert.NoError(t, g.Wait())
}
