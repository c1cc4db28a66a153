package authflow

import "sync"

// surfaceGate enforces at most one in-flight exchange per form surface.
// It is the Go rendering of the UI's loading flag: acquisition fails fast
// instead of queueing, because the user must resubmit rather than stack
// exchanges behind one another.
type surfaceGate struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func newSurfaceGate() *surfaceGate {
	return &surfaceGate{active: make(map[string]struct{})}
}

// acquire reserves the surface. An empty surface is never gated; callers
// that want gating must dispatch with WithSurface.
func (g *surfaceGate) acquire(surface string) bool {
	if surface == "" {
		return true
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.active[surface]; busy {
		return false
	}
	g.active[surface] = struct{}{}
	return true
}

func (g *surfaceGate) release(surface string) {
	if surface == "" {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.active, surface)
}
