package app

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTimerRegistryScheduleFires(t *testing.T) {
	r := newTimerRegistry()
	fired := make(chan struct{})

	r.Schedule("slot", time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
	if r.Pending("slot") {
		t.Error("slot still pending after firing")
	}
}

func TestTimerRegistryCancelPreventsCallback(t *testing.T) {
	r := newTimerRegistry()
	var fired atomic.Int32

	r.Schedule("slot", 5*time.Millisecond, func() { fired.Add(1) })
	r.Cancel("slot")

	time.Sleep(50 * time.Millisecond)
	if fired.Load() != 0 {
		t.Error("cancelled timer fired")
	}
	if r.Pending("slot") {
		t.Error("cancelled slot still pending")
	}
}

func TestTimerRegistryRescheduleReplaces(t *testing.T) {
	r := newTimerRegistry()
	var first, second atomic.Int32

	r.Schedule("slot", 5*time.Millisecond, func() { first.Add(1) })
	r.Schedule("slot", 10*time.Millisecond, func() { second.Add(1) })

	time.Sleep(100 * time.Millisecond)
	if first.Load() != 0 {
		t.Error("replaced timer fired")
	}
	if second.Load() != 1 {
		t.Errorf("replacement fired %d times, want 1", second.Load())
	}
}

func TestTimerRegistryCancelRace(t *testing.T) {
	r := newTimerRegistry()
	var fired atomic.Int32

	// Hammer the cancel-right-at-expiry window; the generation guard must
	// keep every cancelled callback from running.
	for i := 0; i < 100; i++ {
		r.Schedule("slot", time.Microsecond, func() { fired.Add(1) })
		r.Cancel("slot")
	}

	time.Sleep(50 * time.Millisecond)
	if fired.Load() != 0 {
		t.Errorf("%d cancelled timers fired", fired.Load())
	}
}

func TestTimerRegistryCancelAll(t *testing.T) {
	r := newTimerRegistry()
	var fired atomic.Int32

	for _, name := range []string{"a", "b", "c"} {
		r.Schedule(name, 5*time.Millisecond, func() { fired.Add(1) })
	}
	r.CancelAll()

	time.Sleep(50 * time.Millisecond)
	if fired.Load() != 0 {
		t.Errorf("%d timers fired after CancelAll", fired.Load())
	}
}
