// Package scope provides the guard returned by disposable subscriptions.
package scope

import (
	"sync"
	"sync/atomic"
)

// Guard runs its release action exactly once, however many times it is
// released. A nil *Guard is a no-op.
type Guard struct {
	once     sync.Once
	release  func()
	released atomic.Bool
}

// New returns a guard that runs release on the first Release call.
func New(release func()) *Guard {
	return &Guard{release: release}
}

// Release runs the release action if it has not run yet.
func (g *Guard) Release() {
	if g == nil {
		return
	}
	g.once.Do(func() {
		g.released.Store(true)
		if g.release != nil {
			g.release()
		}
	})
}

// Close releases the guard so it can be used as an io.Closer.
func (g *Guard) Close() error {
	g.Release()
	return nil
}

// Released reports whether Release has been called.
func (g *Guard) Released() bool {
	return g != nil && g.released.Load()
}

// Group releases several guards together, in reverse order of addition.
type Group struct {
	mu     sync.Mutex
	guards []*Guard
}

// Add tracks g and returns it.
func (gr *Group) Add(g *Guard) *Guard {
	gr.mu.Lock()
	defer gr.mu.Unlock()
	gr.guards = append(gr.guards, g)
	return g
}

// Release releases every tracked guard and forgets them.
func (gr *Group) Release() {
	gr.mu.Lock()
	guards := gr.guards
	gr.guards = nil
	gr.mu.Unlock()

	for i := len(guards) - 1; i >= 0; i-- {
		guards[i].Release()
	}
}
