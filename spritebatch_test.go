package spritebatch

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 20, true},
		{40, 60, true},
		{25, 40, true},
		{9, 20, false},
		{41, 30, false},
		{20, 61, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestQuadCorners(t *testing.T) {
	got := quadCorners(Rect{10, 20, 30, 40}, OriginTopLeft, 2)
	want := [4]Vec3{{10, 20, 2}, {10, 60, 2}, {40, 60, 2}, {40, 20, 2}}
	if got != want {
		t.Errorf("top-left = %v, want %v", got, want)
	}
	got = quadCorners(Rect{0, 0, 4, 2}, OriginCenter, 0)
	want = [4]Vec3{{-2, -1, 0}, {-2, 1, 0}, {2, 1, 0}, {2, -1, 0}}
	if got != want {
		t.Errorf("center = %v, want %v", got, want)
	}
}

func TestBlendMode_EbitenBlend(t *testing.T) {
	if BlendNormal.EbitenBlend() != ebiten.BlendSourceOver {
		t.Error("BlendNormal != BlendSourceOver")
	}
	if BlendAdd.EbitenBlend() != ebiten.BlendLighter {
		t.Error("BlendAdd != BlendLighter")
	}
	if BlendNone.EbitenBlend() != ebiten.BlendCopy {
		t.Error("BlendNone != BlendCopy")
	}
}

func TestHandleOffsets(t *testing.T) {
	h := Handle{slot: 7, gen: 1}
	if h.Slot() != 7 || h.VertexOffset() != 28 || h.IndexOffset() != 42 {
		t.Errorf("offsets = %d/%d/%d, want 7/28/42", h.Slot(), h.VertexOffset(), h.IndexOffset())
	}
}
