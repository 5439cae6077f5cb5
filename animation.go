package spritebatch

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields of a sprite simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenRotation, TweenColor) and call Update(dt) each frame before Sync.
// The group writes its values through the batch's update paths. If the
// sprite is removed, the group stops immediately.
//
// There is no global animation manager; callers drive Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	apply  func() error

	batch  *Batch
	handle Handle
	color  Color // scratch target for TweenColor

	Done bool
	// Err holds the error that stopped the group early, if any.
	Err error
}

// Update advances all tweens by dt seconds, writes the values and pushes
// them into the batch.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if !g.batch.Valid(g.handle) {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if err := g.apply(); err != nil {
		g.Err = err
		g.Done = true
	}
}

// TweenPosition creates a TweenGroup that moves t to (toX, toY) over the
// given duration using the easing function.
func TweenPosition(t *Transform, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := transformGroup(t, 2)
	g.tweens[0] = gween.New(float32(t.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(t.Y), float32(toY), duration, fn)
	g.fields[0] = &t.X
	g.fields[1] = &t.Y
	return g
}

// TweenScale creates a TweenGroup that animates t.ScaleX and t.ScaleY.
func TweenScale(t *Transform, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := transformGroup(t, 2)
	g.tweens[0] = gween.New(float32(t.ScaleX), float32(toSX), duration, fn)
	g.tweens[1] = gween.New(float32(t.ScaleY), float32(toSY), duration, fn)
	g.fields[0] = &t.ScaleX
	g.fields[1] = &t.ScaleY
	return g
}

// TweenRotation creates a TweenGroup that animates t.Rotation.
func TweenRotation(t *Transform, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := transformGroup(t, 1)
	g.tweens[0] = gween.New(float32(t.Rotation), float32(to), duration, fn)
	g.fields[0] = &t.Rotation
	return g
}

func transformGroup(t *Transform, count int) *TweenGroup {
	return &TweenGroup{
		count:  count,
		batch:  t.batch,
		handle: t.handle,
		apply:  t.UpdateTransform,
	}
}

// TweenColor creates a TweenGroup that animates all four components of the
// sprite's color. It fails with *InvalidHandleError if h is not live.
func TweenColor(b *Batch, h Handle, to Color, duration float32, fn ease.TweenFunc) (*TweenGroup, error) {
	info, err := b.Sprite(h)
	if err != nil {
		return nil, err
	}
	from := info.Color
	g := &TweenGroup{count: 4, batch: b, handle: h, color: from}
	g.tweens[0] = gween.New(float32(from.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(from.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(from.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(from.A), float32(to.A), duration, fn)
	g.fields[0] = &g.color.R
	g.fields[1] = &g.color.G
	g.fields[2] = &g.color.B
	g.fields[3] = &g.color.A
	g.apply = func() error { return b.SetColor(h, g.color) }
	return g, nil
}
