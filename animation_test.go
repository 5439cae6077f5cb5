package spritebatch

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPosition(t *testing.T) {
	b, tr := newTransformFixture(t, Rect{0, 0, 10, 10}, OriginTopLeft)
	g := TweenPosition(tr, 100, 50, 1, ease.Linear)

	g.Update(0.5)
	if g.Done {
		t.Fatal("Done after half the duration")
	}
	if math.Abs(tr.X-50) > 1e-4 || math.Abs(tr.Y-25) > 1e-4 {
		t.Errorf("position = (%v, %v), want (50, 25)", tr.X, tr.Y)
	}
	q, _ := b.QuadPositions(tr.Handle())
	if math.Abs(q[0].X-50) > 1e-4 {
		t.Errorf("quad not updated: %v", q[0])
	}

	g.Update(0.5)
	if !g.Done {
		t.Error("not Done after full duration")
	}
	if tr.X != 100 || tr.Y != 50 {
		t.Errorf("final position = (%v, %v), want (100, 50)", tr.X, tr.Y)
	}
}

func TestTweenScaleAndRotation(t *testing.T) {
	_, tr := newTransformFixture(t, Rect{0, 0, 10, 10}, OriginCenter)
	s := TweenScale(tr, 3, 3, 1, ease.Linear)
	r := TweenRotation(tr, 2, 1, ease.Linear)
	s.Update(1)
	r.Update(1)
	if tr.ScaleX != 3 || tr.ScaleY != 3 || tr.Rotation != 2 {
		t.Errorf("scale/rotation = %v,%v/%v", tr.ScaleX, tr.ScaleY, tr.Rotation)
	}
	if !s.Done || !r.Done {
		t.Error("groups not Done")
	}
}

func TestTweenGroup_StopsWhenSpriteRemoved(t *testing.T) {
	b, tr := newTransformFixture(t, Rect{0, 0, 10, 10}, OriginTopLeft)
	g := TweenPosition(tr, 100, 0, 1, ease.Linear)
	b.RemoveSprite(tr.Handle())

	g.Update(0.5)
	if !g.Done {
		t.Error("group still running after remove")
	}
	if tr.X != 0 {
		t.Errorf("X = %v, want untouched 0", tr.X)
	}
	if g.Err != nil {
		t.Errorf("Err = %v, want nil", g.Err)
	}
}

func TestTweenColor(t *testing.T) {
	b := New(nil, DefaultOptions())
	h := b.AddSpriteRect(Rect{Width: 1, Height: 1}, UVRect{}, 0, OriginTopLeft)
	var sink recordingSink
	b.Sync(&sink)

	g, err := TweenColor(b, h, Color{0, 0, 0, 1}, 1, ease.Linear)
	if err != nil {
		t.Fatal(err)
	}
	g.Update(0.5)
	info, _ := b.Sprite(h)
	if math.Abs(info.Color.R-0.5) > 1e-6 || info.Color.A != 1 {
		t.Errorf("color = %v, want half grey", info.Color)
	}
	if got := b.Colors()[h.VertexOffset()]; got != info.Color {
		t.Errorf("vertex color = %v, want %v", got, info.Color)
	}
	if pushed := b.Sync(&sink); pushed.String() != "colors" {
		t.Errorf("pushed = %v, want colors", pushed)
	}

	g.Update(0.5)
	info, _ = b.Sprite(h)
	if !g.Done || info.Color != (Color{0, 0, 0, 1}) {
		t.Errorf("final color = %v, Done = %v", info.Color, g.Done)
	}
}

func TestTweenColor_InvalidHandle(t *testing.T) {
	b := New(nil, DefaultOptions())
	if _, err := TweenColor(b, Handle{}, ColorWhite, 1, ease.Linear); err == nil {
		t.Error("expected error for invalid handle")
	}
}
