package app

import (
	"sync"
	"time"
)

// Timer slot names used by a session.
const (
	timerStartRound    = "start-round"
	timerHostMigration = "host-migration"
	timerDeletion      = "session-deletion"
	timerRemovalPrefix = "removal:" // + playerID
)

// timerRegistry holds a session's named, cancellable timers under a
// uniform cancel-and-replace discipline. A generation counter per slot
// guarantees a cancelled or replaced timer never runs its callback, even
// when cancellation races with expiry.
type timerRegistry struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
	gens   map[string]uint64
}

func newTimerRegistry() *timerRegistry {
	return &timerRegistry{
		timers: make(map[string]*time.Timer),
		gens:   make(map[string]uint64),
	}
}

// Schedule arms the named slot, replacing any pending timer for it. The
// callback runs at most once and only if the slot has not been cancelled
// or rescheduled in the meantime.
func (r *timerRegistry) Schedule(name string, d time.Duration, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.timers[name]; ok {
		t.Stop()
	}
	r.gens[name]++
	gen := r.gens[name]

	r.timers[name] = time.AfterFunc(d, func() {
		r.mu.Lock()
		current := r.gens[name] == gen
		if current {
			delete(r.timers, name)
		}
		r.mu.Unlock()
		if current {
			fn()
		}
	})
}

// Cancel disarms the named slot. A timer whose expiry races with this
// call observes the bumped generation and becomes a no-op.
func (r *timerRegistry) Cancel(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.timers[name]; ok {
		t.Stop()
		delete(r.timers, name)
	}
	r.gens[name]++
}

// Pending reports whether the named slot is armed.
func (r *timerRegistry) Pending(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.timers[name]
	return ok
}

// CancelAll disarms every slot.
func (r *timerRegistry) CancelAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, t := range r.timers {
		t.Stop()
		delete(r.timers, name)
		r.gens[name]++
	}
}
