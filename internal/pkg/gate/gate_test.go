package gate

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstSignalWins(t *testing.T) {
	g := New("h1", time.Minute)

	ok := g.Deliver(Signal{Status: StatusSuccess, Reason: "Build Succeeded", UniqueId: "job-1"})
	require.True(t, ok)

	// Every later signal is a no-op regardless of status or order.
	assert.False(t, g.Deliver(Signal{Status: StatusFailure, Reason: "Compilation Failed", UniqueId: "job-2"}))
	assert.False(t, g.Deliver(Signal{Status: StatusSuccess, UniqueId: "job-3"}))

	snap := g.Snapshot()
	assert.Equal(t, StateFiredSuccess, snap.State)
	require.NotNil(t, snap.Signal)
	assert.Equal(t, "job-1", snap.Signal.UniqueId)
	assert.Equal(t, "Build Succeeded", snap.Signal.Reason)
}

func TestFailureSignal(t *testing.T) {
	g := New("h2", time.Minute)

	require.True(t, g.Deliver(Signal{Status: StatusFailure, Reason: "Compilation Failed", UniqueId: "job-42"}))
	assert.Equal(t, StateFiredFailure, g.State())
	assert.True(t, g.State().Failed())

	// A success arriving after failure must not flip the state.
	assert.False(t, g.Deliver(Signal{Status: StatusSuccess, UniqueId: "job-43"}))
	assert.Equal(t, StateFiredFailure, g.State())
}

func TestExpiry(t *testing.T) {
	g := New("h3", 30*time.Millisecond)

	out, err := g.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateExpired, out.State)
	assert.Nil(t, out.Signal)
	assert.True(t, out.State.Failed())

	// Signals after expiry are rejected as no-ops.
	assert.False(t, g.Deliver(Signal{Status: StatusSuccess, UniqueId: "late"}))
	assert.Equal(t, StateExpired, g.State())
}

func TestWaitUnblocksOnSignal(t *testing.T) {
	g := New("h4", time.Minute)

	var wg sync.WaitGroup
	wg.Add(1)
	var out Outcome
	go func() {
		defer wg.Done()
		var err error
		out, err = g.Wait(context.Background())
		assert.NoError(t, err)
	}()

	time.Sleep(10 * time.Millisecond)
	require.True(t, g.Deliver(Signal{Status: StatusSuccess, UniqueId: "job-7", Data: "artifacts/p/e"}))
	wg.Wait()

	assert.Equal(t, StateFiredSuccess, out.State)
	require.NotNil(t, out.Signal)
	assert.Equal(t, "job-7", out.Signal.UniqueId)
	assert.Equal(t, "artifacts/p/e", out.Signal.Data)
}

func TestWaitContextCancelled(t *testing.T) {
	g := New("h5", time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := g.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	// The gate itself is untouched by a caller timing out.
	assert.Equal(t, StateWaiting, g.State())
}

func TestConcurrentDeliverExactlyOneRecorded(t *testing.T) {
	g := New("h6", time.Minute)

	const n = 16
	var wg sync.WaitGroup
	wins := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status := StatusSuccess
			if i%2 == 1 {
				status = StatusFailure
			}
			if g.Deliver(Signal{Status: status, UniqueId: "job"}) {
				wins <- status
			}
		}(i)
	}
	wg.Wait()
	close(wins)

	var winners []string
	for w := range wins {
		winners = append(winners, w)
	}
	require.Len(t, winners, 1)

	snap := g.Snapshot()
	require.NotNil(t, snap.Signal)
	assert.Equal(t, winners[0], snap.Signal.Status)
}

func TestSignalValid(t *testing.T) {
	assert.True(t, Signal{Status: StatusSuccess}.Valid())
	assert.True(t, Signal{Status: StatusFailure}.Valid())
	assert.False(t, Signal{Status: "MAYBE"}.Valid())
	assert.False(t, Signal{}.Valid())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	g := r.Create(time.Minute)
	require.NotEmpty(t, g.Handle())
	// Handle must be long enough to be unguessable.
	assert.GreaterOrEqual(t, len(g.Handle()), 32)

	got, err := r.Get(g.Handle())
	require.NoError(t, err)
	assert.Same(t, g, got)

	_, err = r.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownHandle)

	g2 := r.Create(time.Minute)
	assert.NotEqual(t, g.Handle(), g2.Handle())

	r.Remove(g.Handle())
	_, err = r.Get(g.Handle())
	assert.ErrorIs(t, err, ErrUnknownHandle)
}

func TestConfValidate(t *testing.T) {
	c := &Conf{}
	assert.Error(t, c.Validate())

	c.Timeout = 300
	assert.NoError(t, c.Validate())
	assert.Equal(t, 300*time.Second, c.TimeoutDuration())
}
