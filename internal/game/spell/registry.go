package spell

import (
	"log/slog"
	"sync"
	"time"
)

// Registry holds the live actions of one entity in insertion order.
//
// Advance ticks a snapshot of the sequence, so an action's Tick may add or
// cancel actions without skipping or double-processing entries; eviction of
// finished actions applies to the live sequence afterward.
type Registry struct {
	mu      sync.RWMutex
	actions []Action
}

// NewRegistry creates an empty action registry.
func NewRegistry() *Registry {
	return &Registry{actions: make([]Action, 0, 4)}
}

// Add appends an action. The caller guarantees single registration per
// successful cast.
func (r *Registry) Add(a Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, a)
}

// Advance ticks every action present at the start of the call, then removes
// the ones whose IsFinished became true. Survivors keep their relative
// order.
func (r *Registry) Advance(elapsed time.Duration) {
	r.mu.RLock()
	snapshot := make([]Action, len(r.actions))
	copy(snapshot, r.actions)
	r.mu.RUnlock()

	if len(snapshot) == 0 {
		return
	}

	// Tick outside the lock: an action may re-enter the registry.
	for _, a := range snapshot {
		a.Tick(elapsed)
		a.OnTickEnd()
	}

	r.mu.Lock()
	n := 0
	for _, a := range r.actions {
		if a.IsFinished() {
			slog.Debug("action finished", "castingID", a.CastingID(), "definitionID", a.DefinitionID())
			continue
		}
		r.actions[n] = a
		n++
	}
	for i := n; i < len(r.actions); i++ {
		r.actions[i] = nil
	}
	r.actions = r.actions[:n]
	r.mu.Unlock()
}

// CancelByCastingID cancels the action with the given casting id. No-op if
// absent.
func (r *Registry) CancelByCastingID(castingID uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.actions {
		if a.CastingID() == castingID {
			a.Cancel(CancelledByRequest)
			return
		}
	}
}

// CancelAllOnMovement cancels every action that is both casting and
// interruptible by movement.
func (r *Registry) CancelAllOnMovement() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.actions {
		if a.InterruptsOnMove() && a.IsCasting() {
			a.Cancel(CancelledByMovement)
		}
	}
}

// IsAnyCasting reports whether any contained action is in its cast phase.
func (r *Registry) IsAnyCasting() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.actions {
		if a.IsCasting() {
			return true
		}
	}
	return false
}

// Find returns the first action matching pred, or nil. Absence is a normal
// outcome, not an error.
func (r *Registry) Find(pred func(Action) bool) Action {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.actions {
		if pred(a) {
			return a
		}
	}
	return nil
}

// Len returns the number of live actions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actions)
}

// DisposeAll cancels and releases every action. Teardown on entity
// destruction.
func (r *Registry) DisposeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.actions {
		a.Cancel(CancelledByShutdown)
		r.actions[i] = nil
	}
	r.actions = r.actions[:0]
}
