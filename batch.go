package spritebatch

import (
	"fmt"
	"log/slog"
)

// Batch packs many quad sprites into one mesh. Sprite lifecycle calls write
// into the shared buffers and record what changed; Sync pushes the changes to
// a Sink once per frame.
//
// A Batch is not safe for concurrent use. All mutations for a frame must be
// made before that frame's Sync.
type Batch struct {
	pool    *slotPool
	atlas   *Atlas
	opts    Options
	pending ChangeSet

	debug bool
	stats Stats
}

// New creates a batch with buffers sized for opts.InitialCapacity sprites.
// atlas may be nil, in which case only AddSpriteRect can create sprites.
func New(atlas *Atlas, opts Options) *Batch {
	opts = opts.withDefaults()
	b := &Batch{
		pool:  newSlotPool(opts.InitialCapacity, opts.GrowBy, opts.Winding),
		atlas: atlas,
		opts:  opts,
	}
	b.pending.mark(ChangeSlotCount | ChangeVertices | ChangeUVs | ChangeColors)
	return b
}

// Options returns the options the batch was created with.
func (b *Batch) Options() Options { return b.opts }

// Atlas returns the atlas used for name lookups.
func (b *Batch) Atlas() *Atlas { return b.atlas }

// SetAtlas replaces the atlas used by future AddSprite calls. Existing sprites
// keep their geometry and UVs. Call between frames.
func (b *Batch) SetAtlas(a *Atlas) { b.atlas = a }

// Len returns the number of live sprites.
func (b *Batch) Len() int { return b.pool.Len() }

// Cap returns the number of slots backing the buffers.
func (b *Batch) Cap() int { return b.pool.Cap() }

// Valid reports whether h refers to a live sprite.
func (b *Batch) Valid(h Handle) bool { return b.pool.valid(h) }

// Pending returns the changes accumulated since the last Sync.
func (b *Batch) Pending() ChangeSet { return b.pending }

// --- Add / remove ---

// AddSprite creates a sprite sized and textured from the named atlas entry.
// x, y is interpreted according to origin. Fails with *AtlasLookupError when
// the name is unknown or the entry lives on another page than Options.Page.
func (b *Batch) AddSprite(name string, x, y, depth float64, origin Origin) (Handle, error) {
	e, err := b.entry(name)
	if err != nil {
		return Handle{}, err
	}
	frame := Rect{X: x, Y: y, Width: e.Size.X, Height: e.Size.Y}
	return b.AddSpriteRect(frame, e.UV, depth, origin), nil
}

// AddSpriteRect creates a sprite from raw geometry and UVs. The sprite starts
// white and visible.
func (b *Batch) AddSpriteRect(frame Rect, uv UVRect, depth float64, origin Origin) Handle {
	epoch := b.pool.epoch
	i := b.pool.allocate()
	if b.pool.epoch != epoch {
		b.stats.Growths++
		if b.debug {
			Logger().Debug("spritebatch: pool grown",
				slog.Int("slots", b.pool.Cap()),
				slog.Int("sprites", b.pool.Len()))
		}
	}

	s := &b.pool.slots[i]
	s.sprite = spriteRecord{
		frame:  frame,
		uv:     uv,
		color:  ColorWhite,
		depth:  depth,
		origin: origin,
	}
	b.writeGeometry(i)
	b.writeUVs(i)
	b.writeColors(i)

	b.pending.mark(ChangeVertices | ChangeUVs | ChangeSlotCount)
	return Handle{slot: int32(i), gen: s.gen}
}

// RemoveSprite frees the sprite's slot. Its quad collapses to zero area and
// the slot may be reused by a later add. h is invalid afterwards.
func (b *Batch) RemoveSprite(h Handle) error {
	if _, err := b.lookup("RemoveSprite", h); err != nil {
		return err
	}
	b.pool.free(int(h.slot))
	b.pending.mark(ChangeVertices)
	return nil
}

// --- Hide / show ---

// HideSprite collapses the sprite's quad without freeing its slot. UVs and
// colors are untouched. Hiding a hidden sprite does nothing.
func (b *Batch) HideSprite(h Handle) error {
	s, err := b.lookup("HideSprite", h)
	if err != nil {
		return err
	}
	if s.sprite.hidden {
		return nil
	}
	s.sprite.hidden = true
	b.pool.zeroQuad(int(h.slot))
	b.pending.mark(ChangeVertices)
	return nil
}

// ShowSprite makes a hidden sprite visible again by asking its Transformer to
// recompute positions. Sprites without a Transformer are rebuilt from their
// frame. Showing a visible sprite does nothing.
func (b *Batch) ShowSprite(h Handle) error {
	s, err := b.lookup("ShowSprite", h)
	if err != nil {
		return err
	}
	if !s.sprite.hidden {
		return nil
	}
	s.sprite.hidden = false

	if t := s.sprite.transformer; t != nil {
		return t.UpdateTransform()
	}
	b.writeGeometry(int(h.slot))
	b.UpdatePositions()
	return nil
}

// IsHidden reports whether the sprite is hidden.
func (b *Batch) IsHidden(h Handle) (bool, error) {
	s, err := b.lookup("IsHidden", h)
	if err != nil {
		return false, err
	}
	return s.sprite.hidden, nil
}

// --- Update paths ---

// UpdateUV rewrites the sprite's four UVs from its UV rect.
func (b *Batch) UpdateUV(h Handle) error {
	if _, err := b.lookup("UpdateUV", h); err != nil {
		return err
	}
	b.writeUVs(int(h.slot))
	b.pending.mark(ChangeUVs)
	return nil
}

// UpdateColors writes the sprite's color into all four vertex colors.
func (b *Batch) UpdateColors(h Handle) error {
	if _, err := b.lookup("UpdateColors", h); err != nil {
		return err
	}
	b.writeColors(int(h.slot))
	b.pending.mark(ChangeColors)
	return nil
}

// UpdatePositions records that positions were written directly into the
// shared buffer. It does not touch the buffer itself.
func (b *Batch) UpdatePositions() {
	b.pending.mark(ChangeVertices)
}

// SetColor sets the sprite's color and updates its vertex colors.
func (b *Batch) SetColor(h Handle, c Color) error {
	s, err := b.lookup("SetColor", h)
	if err != nil {
		return err
	}
	s.sprite.color = c
	return b.UpdateColors(h)
}

// SetUVRect sets the sprite's UV rect and updates its UVs.
func (b *Batch) SetUVRect(h Handle, uv UVRect) error {
	s, err := b.lookup("SetUVRect", h)
	if err != nil {
		return err
	}
	s.sprite.uv = uv
	return b.UpdateUV(h)
}

// SetRegion switches the sprite to another atlas entry, keeping its position.
// The frame is resized to the entry's source size.
func (b *Batch) SetRegion(h Handle, name string) error {
	s, err := b.lookup("SetRegion", h)
	if err != nil {
		return err
	}
	e, err := b.entry(name)
	if err != nil {
		return err
	}
	frame := s.sprite.frame
	frame.Width, frame.Height = e.Size.X, e.Size.Y
	if err := b.SetFrame(h, frame); err != nil {
		return err
	}
	return b.SetUVRect(h, e.UV)
}

// SetFrame moves or resizes the sprite. Hidden sprites keep their collapsed
// quad until shown. A sprite with a Transformer is rewritten by it; only the
// frame size matters then, since the Transformer owns the position.
func (b *Batch) SetFrame(h Handle, frame Rect) error {
	s, err := b.lookup("SetFrame", h)
	if err != nil {
		return err
	}
	s.sprite.frame = frame
	if s.sprite.hidden {
		return nil
	}
	if t := s.sprite.transformer; t != nil {
		return t.UpdateTransform()
	}
	b.writeGeometry(int(h.slot))
	b.UpdatePositions()
	return nil
}

// SetTransformer attaches the collaborator used by ShowSprite. Pass nil to
// detach.
func (b *Batch) SetTransformer(h Handle, t Transformer) error {
	s, err := b.lookup("SetTransformer", h)
	if err != nil {
		return err
	}
	s.sprite.transformer = t
	return nil
}

// Sprite returns a snapshot of the sprite's state.
func (b *Batch) Sprite(h Handle) (SpriteInfo, error) {
	s, err := b.lookup("Sprite", h)
	if err != nil {
		return SpriteInfo{}, err
	}
	r := &s.sprite
	return SpriteInfo{
		Slot:   int(h.slot),
		Frame:  r.frame,
		UV:     r.uv,
		Color:  r.color,
		Depth:  r.depth,
		Origin: r.origin,
		Hidden: r.hidden,
	}, nil
}

// Each calls fn for every live sprite in slot order until fn returns false.
func (b *Batch) Each(fn func(h Handle) bool) {
	for i := range b.pool.slots {
		s := &b.pool.slots[i]
		if s.state != slotOccupied {
			continue
		}
		if !fn(Handle{slot: int32(i), gen: s.gen}) {
			return
		}
	}
}

// --- Direct buffer access ---

// QuadPositions returns the sprite's four entries of the shared position
// buffer, in corner order top-left, bottom-left, bottom-right, top-right.
// Writes go straight into the mesh; call UpdatePositions afterwards. The
// slice is invalidated when the pool grows (see Epoch).
func (b *Batch) QuadPositions(h Handle) ([]Vec3, error) {
	if _, err := b.lookup("QuadPositions", h); err != nil {
		return nil, err
	}
	return b.pool.quad(int(h.slot)), nil
}

// Positions returns the shared position buffer (4 entries per slot).
func (b *Batch) Positions() []Vec3 { return b.pool.positions }

// UVs returns the shared UV buffer (4 entries per slot).
func (b *Batch) UVs() []Vec2 { return b.pool.uvs }

// Colors returns the shared color buffer (4 entries per slot).
func (b *Batch) Colors() []Color { return b.pool.colors }

// Indices returns the shared triangle index buffer (6 entries per slot).
func (b *Batch) Indices() []uint32 { return b.pool.indices }

// Epoch changes whenever the buffers are reallocated. Slices obtained from
// Positions, UVs, Colors, Indices or QuadPositions under an older epoch no
// longer alias the mesh and must be fetched again.
func (b *Batch) Epoch() uint64 { return b.pool.epoch }

// --- Sync ---

// Sync consumes the changes accumulated since the previous Sync and pushes
// them to sink. A slot-count change replaces every buffer; otherwise only
// the dirty buffers are pushed. It returns what was pushed.
func (b *Batch) Sync(sink Sink) ChangeSet {
	cs := b.pending.take()
	if cs.Empty() {
		return ChangeSet{}
	}

	var pushed ChangeSet
	p := b.pool

	if cs.Has(ChangeSlotCount) {
		sink.Clear()
		sink.SetPositions(p.positions)
		sink.SetUVs(p.uvs)
		sink.SetColors(p.colors)
		sink.SetIndices(p.indices)
		pushed.mark(ChangeSlotCount | ChangeVertices | ChangeUVs | ChangeColors)
	} else {
		if cs.Has(ChangeVertices) {
			sink.SetPositions(p.positions)
			pushed.mark(ChangeVertices)
			cs.mark(ChangeBounds)
		}
		if cs.Has(ChangeBounds) {
			sink.RecalculateBounds()
			pushed.mark(ChangeBounds)
		}
		if cs.Has(ChangeColors) {
			sink.SetColors(p.colors)
			pushed.mark(ChangeColors)
		}
		if cs.Has(ChangeUVs) {
			sink.SetUVs(p.uvs)
			pushed.mark(ChangeUVs)
		}
	}

	b.stats.record(pushed)
	if b.debug {
		b.debugLog(pushed)
	}
	return pushed
}

// --- Internal writers ---

// entry resolves name against the atlas, restricted to the batch's page.
func (b *Batch) entry(name string) (AtlasEntry, error) {
	if b.atlas == nil {
		return AtlasEntry{}, &AtlasLookupError{Name: name, Reason: "no atlas loaded"}
	}
	e, err := b.atlas.Entry(name)
	if err != nil {
		return AtlasEntry{}, err
	}
	if e.Page != b.opts.Page {
		return AtlasEntry{}, &AtlasLookupError{
			Name:   name,
			Reason: fmt.Sprintf("on atlas page %d, batch draws page %d", e.Page, b.opts.Page),
		}
	}
	return e, nil
}

// lookup validates h and returns its slot.
func (b *Batch) lookup(op string, h Handle) (*slot, error) {
	if !b.pool.valid(h) {
		err := &InvalidHandleError{Op: op, Handle: h}
		if b.debug {
			Logger().Warn(err.Error())
		}
		return nil, err
	}
	return &b.pool.slots[h.slot], nil
}

func (b *Batch) writeGeometry(i int) {
	r := &b.pool.slots[i].sprite
	c := quadCorners(r.frame, r.origin, r.depth)
	copy(b.pool.quad(i), c[:])
}

func (b *Batch) writeUVs(i int) {
	c := b.pool.slots[i].sprite.uv.Corners()
	copy(b.pool.uvQuad(i), c[:])
}

func (b *Batch) writeColors(i int) {
	c := b.pool.slots[i].sprite.color
	q := b.pool.colorQuad(i)
	for k := range q {
		q[k] = c
	}
}
