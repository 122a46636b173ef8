package auth

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// Gate decides whether the board is shown at all. Something outside the
// gate, a login screen or a test, eventually calls Signal once; the first
// signal wins and later ones are ignored.
type Gate struct {
	mu            sync.Mutex
	done          chan struct{}
	signalled     bool
	authenticated bool
}

func NewGate() *Gate {
	return &Gate{done: make(chan struct{})}
}

// Signal records the outcome of the login attempt.
func (g *Gate) Signal(ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.signalled {
		return
	}
	g.signalled = true
	g.authenticated = ok
	close(g.done)
}

func (g *Gate) Authenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.authenticated
}

// Done is closed once Signal has been called.
func (g *Gate) Done() <-chan struct{} {
	return g.done
}

// Wait blocks until the gate is signalled or ctx ends.
func (g *Gate) Wait(ctx context.Context) (bool, error) {
	select {
	case <-g.done:
		return g.Authenticated(), nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Simulate signals success after delay, standing in for a real sign-in.
// It returns early without signalling if ctx ends first.
func Simulate(ctx context.Context, g *Gate, delay time.Duration) {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		g.Signal(true)
	case <-ctx.Done():
	}
}
