package scrawl

/* MaxTrackedBuffers bounds the number of SHM slots BufferDamageTracker
remembers before evicting the least-recently-used one (spec.md §4.5). */
const MaxTrackedBuffers = 8

type poolIdentity struct {
	generation uint64
	size       int
}

type bufferSlot struct {
	regions   []Rect
	forceFull bool
	lastUsed  uint64
}

/* BufferDamageTracker tracks damage per SHM slot keyed by the start-of
canvas memory address of the buffer, invalidated wholesale whenever the
backing pool's identity (generation, byte size) changes (spec.md §3, §4.5). */
type BufferDamageTracker struct {
	slots   map[uintptr]*bufferSlot
	pool    poolIdentity
	full    bool
	seq     uint64
	screenW int
	screenH int
}

func NewBufferDamageTracker() *BufferDamageTracker {
	return &BufferDamageTracker{slots: make(map[uintptr]*bufferSlot)}
}

/* SetScreenSize configures the dimensions used for full-damage rectangles
returned by take_buffer_damage. */
func (t *BufferDamageTracker) SetScreenSize(w, h int) {
	t.screenW, t.screenH = w, h
}

/* MarkRect appends r to every tracked slot whose forceFull is false. */
func (t *BufferDamageTracker) MarkRect(r Rect) {
	if !r.IsValid() {
		return
	}
	for _, s := range t.slots {
		if !s.forceFull {
			s.regions = append(s.regions, r)
		}
	}
}

/* MarkAllFull sets the global full flag and forces every existing slot to
full damage, dropping their accumulated regions. */
func (t *BufferDamageTracker) MarkAllFull() {
	t.full = true
	for _, s := range t.slots {
		s.forceFull = true
		s.regions = nil
	}
}

func (t *BufferDamageTracker) evictLRU() {
	var oldestPtr uintptr
	var oldestSeq uint64 = ^uint64(0)
	first := true
	for ptr, s := range t.slots {
		if first || s.lastUsed < oldestSeq {
			oldestPtr = ptr
			oldestSeq = s.lastUsed
			first = false
		}
	}
	if !first {
		delete(t.slots, oldestPtr)
	}
}

/* TakeBufferDamage implements the contract in spec.md §4.5: pool identity
is checked first (generation change or byte-size growth invalidates
everything and sets global full); then the slot is looked up or inserted
(new slots start force-full); if force-full or global full is set it is
cleared and a single full-surface rectangle is returned; otherwise the
slot's regions are merged and drained. */
func (t *BufferDamageTracker) TakeBufferDamage(canvasPtr uintptr, w, h int, poolGeneration uint64, poolSize int) []Rect {
	id := poolIdentity{generation: poolGeneration, size: poolSize}
	if id.generation != t.pool.generation || poolSize > t.pool.size {
		t.slots = make(map[uintptr]*bufferSlot)
		t.full = true
	}
	t.pool = id

	s, ok := t.slots[canvasPtr]
	if !ok {
		if len(t.slots) >= MaxTrackedBuffers {
			t.evictLRU()
		}
		s = &bufferSlot{forceFull: true}
		t.slots[canvasPtr] = s
	}
	t.seq++
	s.lastUsed = t.seq

	if s.forceFull || t.full {
		s.forceFull = false
		s.regions = nil
		t.full = false
		full := Rect{Min: Point{0, 0}, Max: Point{float64(w), float64(h)}}
		return []Rect{full}
	}

	merged := mergeRects(s.regions, 1)
	s.regions = nil
	return merged
}

/* ClearGlobalFull drops the global full flag without touching individual
slots; used once every currently-tracked slot has consumed at least one
full-damage render after a pool-identity change. */
func (t *BufferDamageTracker) ClearGlobalFull() {
	t.full = false
}
