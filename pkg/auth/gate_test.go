package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateFirstSignalWins(t *testing.T) {
	g := NewGate()
	assert.False(t, g.Authenticated())

	g.Signal(true)
	g.Signal(false)
	assert.True(t, g.Authenticated())

	ok, err := g.Wait(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGateWaitHonoursContext(t *testing.T) {
	g := NewGate()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	ok, err := g.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, ok)
}

func TestSimulate(t *testing.T) {
	g := NewGate()
	go Simulate(context.Background(), g, 5*time.Millisecond)

	select {
	case <-g.Done():
	case <-time.After(time.Second):
		t.Fatal("gate was never signalled")
	}
	assert.True(t, g.Authenticated())
}

func TestSimulateCancelled(t *testing.T) {
	g := NewGate()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	Simulate(ctx, g, time.Hour)
	select {
	case <-g.Done():
		t.Fatal("cancelled simulation must not signal")
	default:
	}
}
