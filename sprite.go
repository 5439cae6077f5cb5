package spritebatch

// Handle identifies a sprite inside a Batch. It is a plain value holding the
// slot index and the slot's generation; it never references buffer storage.
// The zero Handle is never valid.
type Handle struct {
	slot int32
	gen  uint32
}

// Slot returns the slot index the handle addresses.
func (h Handle) Slot() int { return int(h.slot) }

// VertexOffset returns the first index of the sprite's four entries in the
// position, UV and color buffers.
func (h Handle) VertexOffset() int { return int(h.slot) * vertsPerQuad }

// IndexOffset returns the first index of the sprite's six entries in the
// triangle index buffer.
func (h Handle) IndexOffset() int { return int(h.slot) * indicesPerQuad }

// SpriteInfo is a read-only snapshot of a sprite's state.
type SpriteInfo struct {
	Slot   int
	Frame  Rect
	UV     UVRect
	Color  Color
	Depth  float64
	Origin Origin
	Hidden bool
}

// Transformer recomputes a sprite's positions. Implementations write into the
// quad returned by Batch.QuadPositions and then call Batch.UpdatePositions.
// ShowSprite calls UpdateTransform to restore a hidden sprite.
type Transformer interface {
	UpdateTransform() error
}

// quadCorners returns the frame's corners in quad order: top-left,
// bottom-left, bottom-right, top-right.
func quadCorners(frame Rect, origin Origin, depth float64) [vertsPerQuad]Vec3 {
	x0, y0 := frame.X, frame.Y
	if origin == OriginCenter {
		x0 -= frame.Width / 2
		y0 -= frame.Height / 2
	}
	x1, y1 := x0+frame.Width, y0+frame.Height
	return [vertsPerQuad]Vec3{
		{x0, y0, depth},
		{x0, y1, depth},
		{x1, y1, depth},
		{x1, y0, depth},
	}
}
