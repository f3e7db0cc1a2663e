package scrawl

import "testing"

/* invariant 4: every buffer slot that is touched after a pool-identity
change must receive a full-surface damage rectangle at least once before
any partial damage is returned for it. */
func TestBufferDamageFullOnFirstUse(t *testing.T) {
	tr := NewBufferDamageTracker()
	rects := tr.TakeBufferDamage(0x1000, 800, 600, 1, 4096)
	if len(rects) != 1 {
		t.Fatalf("expected exactly one full rect, got %d", len(rects))
	}
	want := Rect{Min: Point{0, 0}, Max: Point{800, 600}}
	if rects[0] != want {
		t.Fatalf("expected full-surface rect %v, got %v", want, rects[0])
	}
}

func TestBufferDamagePartialAfterFirstUse(t *testing.T) {
	tr := NewBufferDamageTracker()
	tr.TakeBufferDamage(0x1000, 800, 600, 1, 4096)

	tr.MarkRect(RectXYWH(10, 10, 5, 5))
	rects := tr.TakeBufferDamage(0x1000, 800, 600, 1, 4096)
	if len(rects) != 1 {
		t.Fatalf("expected 1 merged rect, got %d", len(rects))
	}
	if rects[0] != RectXYWH(10, 10, 5, 5) {
		t.Fatalf("unexpected partial damage rect: %v", rects[0])
	}
}

/* seed scenario 4: damage tracker across pool growth. A second buffer
touched for the first time after growth still gets full damage, and the
first buffer (already consumed once) also gets forced full again because
growth invalidates every slot. */
func TestBufferDamageTrackerAcrossPoolGrowth(t *testing.T) {
	tr := NewBufferDamageTracker()
	tr.TakeBufferDamage(0x1000, 800, 600, 1, 4096)
	tr.TakeBufferDamage(0x2000, 800, 600, 1, 4096)

	// pool grows: generation bumps and byte size increases
	rectsA := tr.TakeBufferDamage(0x1000, 800, 600, 2, 8192)
	if len(rectsA) != 1 {
		t.Fatalf("expected slot A full damage after growth, got %d rects", len(rectsA))
	}

	tr.MarkRect(RectXYWH(1, 1, 2, 2))
	rectsB := tr.TakeBufferDamage(0x2000, 800, 600, 2, 8192)
	if len(rectsB) != 1 || !rectsB[0].IsValid() {
		t.Fatalf("expected slot B full damage on first touch after growth")
	}
	want := Rect{Min: Point{0, 0}, Max: Point{800, 600}}
	if rectsB[0] != want {
		t.Fatalf("expected full surface rect for B, got %v", rectsB[0])
	}
}

func TestBufferDamageEvictsLRUBeyondCap(t *testing.T) {
	tr := NewBufferDamageTracker()
	for i := 0; i < MaxTrackedBuffers+2; i++ {
		tr.TakeBufferDamage(uintptr(0x1000+i), 800, 600, 1, 4096)
	}
	if len(tr.slots) > MaxTrackedBuffers {
		t.Fatalf("expected at most %d tracked slots, got %d", MaxTrackedBuffers, len(tr.slots))
	}
}

func TestBufferDamageMarkAllFullForcesEveryExistingSlot(t *testing.T) {
	tr := NewBufferDamageTracker()
	tr.TakeBufferDamage(0x1000, 800, 600, 1, 4096)
	tr.TakeBufferDamage(0x2000, 800, 600, 1, 4096)
	tr.MarkAllFull()

	for _, ptr := range []uintptr{0x1000, 0x2000} {
		rects := tr.TakeBufferDamage(ptr, 800, 600, 1, 4096)
		if len(rects) != 1 {
			t.Fatalf("expected full damage for %x after MarkAllFull", ptr)
		}
	}
}

/* invariant 3: an empty/degenerate rect never reaches the damage set. */
func TestDirtyTrackerRejectsDegenerateRect(t *testing.T) {
	d := &DirtyTracker{}
	d.MarkRect(Rect{Min: Point{5, 5}, Max: Point{5, 5}})
	if d.IsDirty() {
		t.Fatalf("degenerate rect should not mark the tracker dirty")
	}
}

func TestDirtyTrackerMergeAdjacent(t *testing.T) {
	d := &DirtyTracker{}
	d.MarkRect(RectXYWH(0, 0, 10, 10))
	d.MarkRect(RectXYWH(10, 0, 10, 10))
	regions, full := d.Drain()
	if full {
		t.Fatalf("did not expect full damage")
	}
	if len(regions) != 1 {
		t.Fatalf("expected adjacent rects to merge into 1, got %d", len(regions))
	}
	if regions[0] != RectXYWH(0, 0, 20, 10) {
		t.Fatalf("unexpected merged rect: %v", regions[0])
	}
}

func TestDirtyTrackerFullOverridesRegions(t *testing.T) {
	d := &DirtyTracker{}
	d.MarkRect(RectXYWH(0, 0, 5, 5))
	d.MarkFull()
	regions, full := d.Drain()
	if !full || regions != nil {
		t.Fatalf("expected full damage to discard accumulated regions")
	}
	if d.IsDirty() {
		t.Fatalf("Drain should reset the tracker")
	}
}
