package spritebatch

const (
	vertsPerQuad   = 4
	indicesPerQuad = 6
)

// slotState tags a pool slot as free or holding a sprite.
type slotState uint8

const (
	slotFree slotState = iota
	slotOccupied
)

// spriteRecord is the per-sprite data held by an occupied slot.
type spriteRecord struct {
	frame       Rect
	uv          UVRect
	color       Color
	depth       float64
	origin      Origin
	hidden      bool
	transformer Transformer
}

// slot is one entry of the pool. gen is bumped every time the slot becomes
// occupied, so handles from an earlier occupancy stop matching.
type slot struct {
	state  slotState
	gen    uint32
	sprite spriteRecord
}

// slotPool owns the four parallel mesh buffers. Slot i always addresses
// [4i, 4i+4) in positions/uvs/colors and [6i, 6i+6) in indices.
type slotPool struct {
	slots     []slot
	positions []Vec3
	uvs       []Vec2
	colors    []Color
	indices   []uint32

	winding  Winding
	growBy   int
	occupied int
	epoch    uint64 // bumped on every reallocation of the buffers
}

func newSlotPool(capacity, growBy int, winding Winding) *slotPool {
	p := &slotPool{winding: winding, growBy: growBy}
	if capacity > 0 {
		p.grow(capacity)
	}
	return p
}

// Len returns the number of occupied slots.
func (p *slotPool) Len() int { return p.occupied }

// Cap returns the number of slots backing the buffers.
func (p *slotPool) Cap() int { return len(p.slots) }

// allocate returns the first free slot, growing the buffers by growBy slots
// when none is free. The returned slot is occupied with an empty record.
func (p *slotPool) allocate() int {
	i := 0
	for ; i < len(p.slots); i++ {
		if p.slots[i].state == slotFree {
			break
		}
	}
	if i == len(p.slots) {
		i = p.grow(p.growBy)
	}

	s := &p.slots[i]
	s.state = slotOccupied
	s.gen++
	s.sprite = spriteRecord{}
	p.occupied++
	return i
}

// free zeroes the slot's quad (degenerate, zero area) and marks it free.
// Other slots are untouched and the buffers never shrink.
func (p *slotPool) free(i int) {
	s := &p.slots[i]
	if s.state == slotFree {
		return
	}
	p.zeroQuad(i)
	s.state = slotFree
	s.sprite = spriteRecord{}
	p.occupied--
}

// grow enlarges every buffer by count slots, copying existing content into
// the new backing arrays, and returns the index of the first new slot.
func (p *slotPool) grow(count int) int {
	first := len(p.slots)
	n := first + count

	slots := make([]slot, n)
	copy(slots, p.slots)
	p.slots = slots

	positions := make([]Vec3, n*vertsPerQuad)
	copy(positions, p.positions)
	p.positions = positions

	uvs := make([]Vec2, n*vertsPerQuad)
	copy(uvs, p.uvs)
	p.uvs = uvs

	colors := make([]Color, n*vertsPerQuad)
	copy(colors, p.colors)
	p.colors = colors

	indices := make([]uint32, n*indicesPerQuad)
	copy(indices, p.indices)
	p.indices = indices

	for i := first; i < n; i++ {
		q := quadIndices(i, p.winding)
		copy(p.indices[i*indicesPerQuad:], q[:])
	}

	p.epoch++
	return first
}

// valid reports whether h refers to the current occupancy of its slot.
func (p *slotPool) valid(h Handle) bool {
	i := int(h.slot)
	if i < 0 || i >= len(p.slots) {
		return false
	}
	s := &p.slots[i]
	return s.state == slotOccupied && s.gen == h.gen
}

func (p *slotPool) zeroQuad(i int) {
	clear(p.quad(i))
}

// quad returns the slot's four positions, capped so appends cannot spill
// into the neighbouring slot.
func (p *slotPool) quad(i int) []Vec3 {
	o := i * vertsPerQuad
	return p.positions[o : o+vertsPerQuad : o+vertsPerQuad]
}

func (p *slotPool) uvQuad(i int) []Vec2 {
	o := i * vertsPerQuad
	return p.uvs[o : o+vertsPerQuad : o+vertsPerQuad]
}

func (p *slotPool) colorQuad(i int) []Color {
	o := i * vertsPerQuad
	return p.colors[o : o+vertsPerQuad : o+vertsPerQuad]
}

// quadIndices returns the two triangles for slot i. Corners are
// top-left=0, bottom-left=1, bottom-right=2, top-right=3.
//
//	CCW:  0 ___ 3      CW:  0 ___ 3
//	      |   /|            |   /|
//	     1|/__|2           1|/__|2
func quadIndices(i int, w Winding) [indicesPerQuad]uint32 {
	b := uint32(i * vertsPerQuad)
	if w == WindingCW {
		return [indicesPerQuad]uint32{
			b + 0, b + 3, b + 1,
			b + 3, b + 2, b + 1,
		}
	}
	return [indicesPerQuad]uint32{
		b + 0, b + 1, b + 3,
		b + 3, b + 1, b + 2,
	}
}
