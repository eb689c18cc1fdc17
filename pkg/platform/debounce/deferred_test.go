package debounce

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formgate/pkg/platform/sentinel"
)

func upper(calls *atomic.Int32) func(context.Context, string) (string, error) {
	return func(_ context.Context, s string) (string, error) {
		calls.Add(1)
		return strings.ToUpper(s), nil
	}
}

func TestDeferred_ResolvesLatestAndRejectsSuperseded(t *testing.T) {
	var calls atomic.Int32
	p := NewDeferred(150*time.Millisecond, upper(&calls))
	ctx := context.Background()

	firstErr := make(chan error, 1)
	go func() {
		_, err := p.Call(ctx, "par")
		firstErr <- err
	}()
	require.Eventually(t, p.Pending, time.Second, time.Millisecond)

	got, err := p.Call(ctx, "paracetamol")
	require.NoError(t, err)
	assert.Equal(t, "PARACETAMOL", got)

	assert.ErrorIs(t, <-firstErr, sentinel.ErrCancelled)
	assert.Equal(t, int32(1), calls.Load(), "one invocation per window")
}

func TestDeferred_PropagatesError(t *testing.T) {
	boom := errors.New("lookup failed")
	p := NewDeferred(time.Millisecond, func(context.Context, int) (int, error) {
		return 0, boom
	})

	_, err := p.Call(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
}

func TestDeferred_CancelRejectsWaiter(t *testing.T) {
	var calls atomic.Int32
	p := NewDeferred(time.Hour, upper(&calls))

	errCh := make(chan error, 1)
	go func() {
		_, err := p.Call(context.Background(), "x")
		errCh <- err
	}()
	require.Eventually(t, p.Pending, time.Second, time.Millisecond)

	p.Cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, sentinel.ErrCancelled)
	case <-time.After(time.Second):
		t.Fatal("cancelled call did not settle")
	}
	assert.Zero(t, calls.Load())
}

func TestDeferred_ContextDone(t *testing.T) {
	var calls atomic.Int32
	p := NewDeferred(time.Hour, upper(&calls))
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.Call(ctx, "x")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDeferred_Close(t *testing.T) {
	var calls atomic.Int32
	p := NewDeferred(time.Millisecond, upper(&calls))
	p.Close()

	_, err := p.Call(context.Background(), "x")
	assert.ErrorIs(t, err, sentinel.ErrDisposed)
	assert.False(t, p.Pending())
	assert.Zero(t, calls.Load())
}
