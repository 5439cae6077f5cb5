package spritebatch

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Mesh is an Ebitengine-backed Sink. It keeps a vertex and index buffer in
// ebiten's layout and draws the whole batch with one DrawTriangles32 call
// against a single atlas page.
type Mesh struct {
	// Page is the atlas page image sampled by every quad.
	Page  *ebiten.Image
	Blend BlendMode

	verts   []ebiten.Vertex
	indices []uint32
	uvs     []Vec2 // normalized, kept so a page change can rescale SrcX/SrcY

	pageW, pageH float32

	bounds      Rect
	boundsDirty bool
}

// NewMesh creates a sink drawing from page. page may be nil until Draw.
func NewMesh(page *ebiten.Image) *Mesh {
	m := &Mesh{}
	m.SetPage(page)
	return m
}

// SetPage switches the sampled page image and rescales the UVs already
// pushed to the new page's size.
func (m *Mesh) SetPage(page *ebiten.Image) {
	m.Page = page
	if page == nil {
		m.pageW, m.pageH = 0, 0
	} else {
		b := page.Bounds()
		m.pageW, m.pageH = float32(b.Dx()), float32(b.Dy())
	}
	m.applyUVs()
}

// Clear implements Sink.
func (m *Mesh) Clear() {
	m.verts = m.verts[:0]
	m.indices = m.indices[:0]
	m.uvs = m.uvs[:0]
	m.bounds = Rect{}
	m.boundsDirty = true
}

// ensureVerts grows the vertex buffer to n entries using a high-water-mark
// strategy (never shrinks the backing array).
func (m *Mesh) ensureVerts(n int) []ebiten.Vertex {
	if cap(m.verts) < n {
		grown := make([]ebiten.Vertex, n)
		copy(grown, m.verts)
		m.verts = grown
	}
	m.verts = m.verts[:n]
	return m.verts
}

// SetPositions implements Sink. Depth is dropped; draw order follows slot order.
func (m *Mesh) SetPositions(positions []Vec3) {
	v := m.ensureVerts(len(positions))
	for i := range positions {
		v[i].DstX = float32(positions[i].X)
		v[i].DstY = float32(positions[i].Y)
	}
	m.boundsDirty = true
}

// SetUVs implements Sink. Normalized V-up coordinates are converted into
// ebiten's top-left pixel space on the page.
func (m *Mesh) SetUVs(uvs []Vec2) {
	m.uvs = append(m.uvs[:0], uvs...)
	m.ensureVerts(len(uvs))
	m.applyUVs()
}

func (m *Mesh) applyUVs() {
	v := m.verts
	for i := range m.uvs {
		if i >= len(v) {
			break
		}
		v[i].SrcX = float32(m.uvs[i].X) * m.pageW
		v[i].SrcY = (1 - float32(m.uvs[i].Y)) * m.pageH
	}
}

// SetColors implements Sink. Colors are stored premultiplied.
func (m *Mesh) SetColors(colors []Color) {
	v := m.ensureVerts(len(colors))
	for i := range colors {
		c := &colors[i]
		a := float32(c.A)
		v[i].ColorR = float32(c.R) * a
		v[i].ColorG = float32(c.G) * a
		v[i].ColorB = float32(c.B) * a
		v[i].ColorA = a
	}
}

// SetIndices implements Sink.
func (m *Mesh) SetIndices(indices []uint32) {
	m.indices = append(m.indices[:0], indices...)
}

// RecalculateBounds implements Sink.
func (m *Mesh) RecalculateBounds() {
	m.bounds = computeMeshAABB(m.verts)
	m.boundsDirty = false
}

// Bounds returns the axis-aligned bounds of all non-degenerate quads,
// recomputing them if positions changed since the last recalculation.
func (m *Mesh) Bounds() Rect {
	if m.boundsDirty {
		m.RecalculateBounds()
	}
	return m.bounds
}

// Vertices returns the sink's vertex buffer. The slice MUST NOT be mutated.
func (m *Mesh) Vertices() []ebiten.Vertex { return m.verts }

// Indices returns the sink's index buffer. The slice MUST NOT be mutated.
func (m *Mesh) Indices() []uint32 { return m.indices }

// Draw submits the whole batch to target in a single draw call. geoM, if
// non-nil, is applied to every vertex.
func (m *Mesh) Draw(target *ebiten.Image, geoM *ebiten.GeoM) {
	if m.Page == nil || len(m.verts) == 0 || len(m.indices) == 0 {
		return
	}

	verts := m.verts
	if geoM != nil {
		verts = make([]ebiten.Vertex, len(m.verts))
		for i, v := range m.verts {
			x, y := geoM.Apply(float64(v.DstX), float64(v.DstY))
			v.DstX, v.DstY = float32(x), float32(y)
			verts[i] = v
		}
	}

	var triOp ebiten.DrawTrianglesOptions
	triOp.Blend = m.Blend.EbitenBlend()
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha

	target.DrawTriangles32(verts, m.indices, m.Page, &triOp)
}

// computeMeshAABB scans vertex positions quad by quad and returns their
// bounding box. Quads collapsed to the origin (freed or hidden sprites) are
// skipped.
func computeMeshAABB(verts []ebiten.Vertex) Rect {
	var minX, minY, maxX, maxY float32
	found := false
	for q := 0; q+vertsPerQuad <= len(verts); q += vertsPerQuad {
		quad := verts[q : q+vertsPerQuad]
		if collapsed(quad) {
			continue
		}
		for i := range quad {
			x, y := quad[i].DstX, quad[i].DstY
			if !found {
				minX, maxX, minY, maxY = x, x, y, y
				found = true
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if !found {
		return Rect{}
	}
	return Rect{
		X:      float64(minX),
		Y:      float64(minY),
		Width:  float64(maxX - minX),
		Height: float64(maxY - minY),
	}
}

func collapsed(quad []ebiten.Vertex) bool {
	for i := range quad {
		if quad[i].DstX != 0 || quad[i].DstY != 0 {
			return false
		}
	}
	return true
}
