package spell

import (
	"testing"
	"time"
)

// fakeAction is a scriptable Action for registry tests.
type fakeAction struct {
	castingID uint32
	defID     int32
	method    CastMethod

	casting    bool
	finished   bool
	failed     bool
	interrupts bool

	ticks       int
	lateTicks   int
	cancelledAs []CancelReason

	// onTick runs inside Tick, for re-entrant mutation tests.
	onTick func()
}

func (f *fakeAction) CastingID() uint32      { return f.castingID }
func (f *fakeAction) DefinitionID() int32    { return f.defID }
func (f *fakeAction) Method() CastMethod     { return f.method }
func (f *fakeAction) Cast() bool             { return true }
func (f *fakeAction) HasFailed() bool        { return f.failed }
func (f *fakeAction) IsFinished() bool       { return f.finished }
func (f *fakeAction) IsCasting() bool        { return f.casting }
func (f *fakeAction) InterruptsOnMove() bool { return f.interrupts }
func (f *fakeAction) OnTickEnd()             { f.lateTicks++ }

func (f *fakeAction) Tick(time.Duration) {
	f.ticks++
	if f.onTick != nil {
		f.onTick()
	}
}

func (f *fakeAction) Cancel(reason CancelReason) {
	f.cancelledAs = append(f.cancelledAs, reason)
	f.casting = false
	f.finished = true
}

const tick = 100 * time.Millisecond

func TestRegistry_Advance_RemovesOnlyFinished(t *testing.T) {
	r := NewRegistry()

	a := &fakeAction{castingID: 1}
	b := &fakeAction{castingID: 2}
	c := &fakeAction{castingID: 3}
	r.Add(a)
	r.Add(b)
	r.Add(c)

	// b finishes during this tick.
	b.onTick = func() { b.finished = true }
	r.Advance(tick)

	if r.Len() != 2 {
		t.Fatalf("expected 2 survivors, got %d", r.Len())
	}
	for _, act := range []*fakeAction{a, b, c} {
		if act.ticks != 1 || act.lateTicks != 1 {
			t.Errorf("action %d: expected 1 tick and 1 late tick, got %d/%d",
				act.castingID, act.ticks, act.lateTicks)
		}
	}

	// Survivors keep their relative order.
	first := r.Find(func(Action) bool { return true })
	if first.CastingID() != 1 {
		t.Errorf("expected action 1 first, got %d", first.CastingID())
	}
}

func TestRegistry_Advance_ReentrantAdd(t *testing.T) {
	r := NewRegistry()

	added := &fakeAction{castingID: 2}
	a := &fakeAction{castingID: 1}
	a.onTick = func() {
		if a.ticks == 1 {
			r.Add(added)
		}
	}
	r.Add(a)

	r.Advance(tick)

	// The action added mid-tick must not be processed on the same pass.
	if added.ticks != 0 {
		t.Errorf("mid-tick addition was ticked on the same pass")
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 actions after advance, got %d", r.Len())
	}

	r.Advance(tick)
	if added.ticks != 1 {
		t.Errorf("expected added action ticked on next pass, got %d ticks", added.ticks)
	}
}

func TestRegistry_Advance_ReentrantCancel(t *testing.T) {
	r := NewRegistry()

	victim := &fakeAction{castingID: 2}
	a := &fakeAction{castingID: 1}
	a.onTick = func() { r.CancelByCastingID(2) }
	r.Add(a)
	r.Add(victim)

	r.Advance(tick)

	if len(victim.cancelledAs) != 1 || victim.cancelledAs[0] != CancelledByRequest {
		t.Fatalf("expected victim cancelled by request, got %v", victim.cancelledAs)
	}
	// Cancelled → finished → evicted on the same pass.
	if r.Len() != 1 {
		t.Errorf("expected 1 action after advance, got %d", r.Len())
	}
}

func TestRegistry_CancelByCastingID_AbsentIsNoop(t *testing.T) {
	r := NewRegistry()
	r.Add(&fakeAction{castingID: 1})

	r.CancelByCastingID(999)

	if r.Len() != 1 {
		t.Errorf("expected registry untouched, got %d", r.Len())
	}
}

func TestRegistry_CancelAllOnMovement(t *testing.T) {
	r := NewRegistry()

	both := &fakeAction{castingID: 1, casting: true, interrupts: true}
	castingOnly := &fakeAction{castingID: 2, casting: true}
	interruptOnly := &fakeAction{castingID: 3, interrupts: true}
	r.Add(both)
	r.Add(castingOnly)
	r.Add(interruptOnly)

	r.CancelAllOnMovement()

	if len(both.cancelledAs) != 1 || both.cancelledAs[0] != CancelledByMovement {
		t.Errorf("casting+interruptible action must be cancelled, got %v", both.cancelledAs)
	}
	if len(castingOnly.cancelledAs) != 0 {
		t.Errorf("casting-only action must be untouched")
	}
	if len(interruptOnly.cancelledAs) != 0 {
		t.Errorf("interruptible-but-idle action must be untouched")
	}
}

func TestRegistry_IsAnyCasting(t *testing.T) {
	r := NewRegistry()
	if r.IsAnyCasting() {
		t.Fatal("empty registry reports casting")
	}

	r.Add(&fakeAction{castingID: 1})
	if r.IsAnyCasting() {
		t.Fatal("idle action reports casting")
	}

	r.Add(&fakeAction{castingID: 2, casting: true})
	if !r.IsAnyCasting() {
		t.Fatal("expected casting")
	}
}

func TestRegistry_Find(t *testing.T) {
	r := NewRegistry()
	r.Add(&fakeAction{castingID: 1, defID: 100})
	r.Add(&fakeAction{castingID: 2, defID: 200})

	found := r.Find(func(a Action) bool { return a.DefinitionID() == 200 })
	if found == nil || found.CastingID() != 2 {
		t.Fatalf("expected action 2, got %v", found)
	}

	if r.Find(func(a Action) bool { return a.DefinitionID() == 999 }) != nil {
		t.Error("expected nil for no match")
	}
}

func TestRegistry_DisposeAll(t *testing.T) {
	r := NewRegistry()
	a := &fakeAction{castingID: 1}
	b := &fakeAction{castingID: 2, casting: true}
	r.Add(a)
	r.Add(b)

	r.DisposeAll()

	if r.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", r.Len())
	}
	for _, act := range []*fakeAction{a, b} {
		if len(act.cancelledAs) != 1 || act.cancelledAs[0] != CancelledByShutdown {
			t.Errorf("action %d: expected shutdown cancel, got %v", act.castingID, act.cancelledAs)
		}
	}
}
