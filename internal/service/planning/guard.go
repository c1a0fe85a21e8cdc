package planning

import "sync"

// runGuard serializes optimization runs per user. Two concurrent runs for
// the same user would race on the same capacity and order rows.
type runGuard struct {
	mu     sync.Mutex
	active map[string]bool
}

func newRunGuard() *runGuard {
	return &runGuard{active: make(map[string]bool)}
}

// acquire returns false when a run is already in flight for the user.
func (g *runGuard) acquire(userID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.active[userID] {
		return false
	}
	g.active[userID] = true
	return true
}

func (g *runGuard) release(userID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.active, userID)
}
