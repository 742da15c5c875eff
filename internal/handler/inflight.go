package handler

import "sync"

// inflightGuard tracks reserve/cancel operations that are currently
// executing, keyed by listing or reservation ID.  Two rapid clicks on
// "Reserve" produce two requests for the same ID; the second is
// rejected here before it reaches the engine, where it would otherwise
// surface as a confusing duplicate-source or not-found error.  This is
// a request-level debounce, not an engine lock: the engine serializes
// its own state.
type inflightGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func newInflightGuard() *inflightGuard {
	return &inflightGuard{active: make(map[string]struct{})}
}

// begin marks id as in flight.  It returns false when an operation for
// the same id is already outstanding.
func (g *inflightGuard) begin(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.active[id]; ok {
		return false
	}
	g.active[id] = struct{}{}
	return true
}

// end clears the in-flight mark for id.  It must be called exactly
// once after a successful begin, typically via defer.
func (g *inflightGuard) end(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, id)
}
