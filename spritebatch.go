package spritebatch

import "github.com/hajimehoshi/ebiten/v2"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the mesh sink builds its vertices.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default sprite color (no tint).
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for UV coordinates, sizes and offsets.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Vec3 is a vertex position. Z carries the sprite depth.
type Vec3 struct {
	X, Y, Z float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// UVRect is a sub-rectangle of a texture in normalized coordinates. V grows
// upward, so LowerLeft is the bottom-left corner of the region.
type UVRect struct {
	LowerLeft  Vec2
	Dimensions Vec2
}

// NewUVRect converts a pixel rectangle on a texture of the given size into a
// normalized UVRect. Pixel coordinates have their origin at the top-left.
func NewUVRect(x, y, w, h float64, textureSize Vec2) UVRect {
	if textureSize.X == 0 || textureSize.Y == 0 {
		return UVRect{}
	}
	return UVRect{
		LowerLeft:  Vec2{x / textureSize.X, 1 - (y+h)/textureSize.Y},
		Dimensions: Vec2{w / textureSize.X, h / textureSize.Y},
	}
}

// Corners returns the four UV coordinates in quad corner order:
// top-left, bottom-left, bottom-right, top-right.
func (u UVRect) Corners() [4]Vec2 {
	ll := u.LowerLeft
	return [4]Vec2{
		ll.Add(Vec2{0, u.Dimensions.Y}),
		ll,
		ll.Add(Vec2{u.Dimensions.X, 0}),
		ll.Add(u.Dimensions),
	}
}

// Origin selects where a sprite's position sits relative to its quad.
type Origin uint8

const (
	OriginTopLeft Origin = iota // position is the quad's top-left corner
	OriginCenter                // position is the quad's center
)

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                       // additive / lighter
	BlendMultiply                  // multiply (source * destination; only darkens)
	BlendScreen                    // screen (1 - (1-src)*(1-dst); only brightens)
	BlendErase                     // destination-out (punch transparent holes)
	BlendBelow                     // destination-over (draw behind existing content)
	BlendNone                      // opaque copy (skip blending)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendNormal:
		return ebiten.BlendSourceOver
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendErase:
		return ebiten.BlendDestinationOut
	case BlendBelow:
		return ebiten.BlendDestinationOver
	case BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}
