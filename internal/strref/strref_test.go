package strref

import "testing"

func TestRetainDedupesByText(t *testing.T) {
	p := New()
	a := p.Retain("X")
	b := p.Retain("X")
	if a != b {
		t.Fatalf("expected same id for equal text, got %d and %d", a, b)
	}
	if got := p.RefCount(a); got != 2 {
		t.Fatalf("expected refcount 2, got %d", got)
	}
}

func TestReleaseReclaimsSlot(t *testing.T) {
	p := New()
	a := p.Retain("X")
	p.Release(a)
	if _, ok := p.Lookup(a); ok {
		t.Fatalf("expected id to be dead after refcount reached zero")
	}
	b := p.Retain("Y")
	if b != a {
		t.Fatalf("expected reclaimed slot to be reused, got new id %d want %d", b, a)
	}
}

func TestUnbalancedReleasePanics(t *testing.T) {
	p := New()
	a := p.Retain("X")
	p.Release(a)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on double release")
		}
	}()
	p.Release(a)
}

func TestNoIDIsInert(t *testing.T) {
	p := New()
	p.Release(NoID) // must not panic
	if _, ok := p.Lookup(NoID); ok {
		t.Fatalf("NoID must never be live")
	}
}
