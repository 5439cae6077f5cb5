package spritebatch

import "math"

// Transform is a per-sprite transform collaborator. It owns position, scale,
// rotation and pivot, and writes the resulting quad straight into the
// batch's position buffer. Setters only record the change; call Flush (once
// per frame) or UpdateTransform to write it.
//
// Transforms are flat: there is no parent/child hierarchy.
type Transform struct {
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64 // radians
	PivotX   float64
	PivotY   float64

	batch  *Batch
	handle Handle
	dirty  bool
}

// NewTransform creates a Transform for h, seeded from the sprite's frame and
// origin, and registers it as the sprite's Transformer.
func NewTransform(b *Batch, h Handle) (*Transform, error) {
	info, err := b.Sprite(h)
	if err != nil {
		return nil, err
	}
	t := &Transform{
		X:      info.Frame.X,
		Y:      info.Frame.Y,
		ScaleX: 1,
		ScaleY: 1,
		batch:  b,
		handle: h,
	}
	if info.Origin == OriginCenter {
		t.PivotX = info.Frame.Width / 2
		t.PivotY = info.Frame.Height / 2
	}
	if err := b.SetTransformer(h, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Handle returns the sprite the transform drives.
func (t *Transform) Handle() Handle { return t.handle }

// SetPosition sets X and Y and marks the transform dirty.
func (t *Transform) SetPosition(x, y float64) {
	t.X = x
	t.Y = y
	t.dirty = true
}

// SetScale sets ScaleX and ScaleY and marks the transform dirty.
func (t *Transform) SetScale(sx, sy float64) {
	t.ScaleX = sx
	t.ScaleY = sy
	t.dirty = true
}

// SetRotation sets the rotation (in radians) and marks the transform dirty.
func (t *Transform) SetRotation(r float64) {
	t.Rotation = r
	t.dirty = true
}

// SetPivot sets PivotX and PivotY and marks the transform dirty.
func (t *Transform) SetPivot(px, py float64) {
	t.PivotX = px
	t.PivotY = py
	t.dirty = true
}

// MarkDirty forces the next Flush to rewrite the quad. Useful after
// bulk-setting fields directly.
func (t *Transform) MarkDirty() { t.dirty = true }

// Flush writes the quad if the transform changed since the last write.
func (t *Transform) Flush() error {
	if !t.dirty {
		return nil
	}
	return t.UpdateTransform()
}

// UpdateTransform implements Transformer. Hidden sprites are left collapsed.
func (t *Transform) UpdateTransform() error {
	info, err := t.batch.Sprite(t.handle)
	if err != nil {
		return err
	}
	t.dirty = false
	if info.Hidden {
		return nil
	}
	quad, err := t.batch.QuadPositions(t.handle)
	if err != nil {
		return err
	}

	m := computeLocalTransform(t)
	w, h := info.Frame.Width, info.Frame.Height
	local := [vertsPerQuad][2]float64{{0, 0}, {0, h}, {w, h}, {w, 0}}
	for i, p := range local {
		x, y := transformPoint(m, p[0], p[1])
		quad[i] = Vec3{x, y, info.Depth}
	}
	t.batch.UpdatePositions()
	return nil
}

// computeLocalTransform returns [a, b, c, d, tx, ty] for
// Translate(-Pivot) -> Scale -> Rotate -> Translate(X, Y).
func computeLocalTransform(t *Transform) [6]float64 {
	sx, sy := t.ScaleX, t.ScaleY
	sin, cos := math.Sincos(t.Rotation)

	preTx := -t.PivotX * sx
	preTy := -t.PivotY * sy

	return [6]float64{
		cos * sx,
		sin * sx,
		-sin * sy,
		cos * sy,
		cos*preTx - sin*preTy + t.X,
		sin*preTx + cos*preTy + t.Y,
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
