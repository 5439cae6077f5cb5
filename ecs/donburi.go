package ecs

import (
	"github.com/phanxgames/spritebatch"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// Sprite is the component data for an entity drawn by a batch.
type Sprite struct {
	Handle    spritebatch.Handle
	Transform *spritebatch.Transform
}

// Tweens holds the running animations of an entity. Finished groups are
// dropped by Systems.Update.
type Tweens struct {
	Groups []*spritebatch.TweenGroup
}

var (
	// SpriteComponent marks entities backed by a batch sprite.
	SpriteComponent = donburi.NewComponentType[Sprite]()
	// TweenComponent holds per-entity tween groups.
	TweenComponent = donburi.NewComponentType[Tweens]()
)

// SyncEvent reports one Sync of the batch.
type SyncEvent struct {
	Pushed  spritebatch.ChangeSet
	Sprites int
}

// SyncEventType is the Donburi event type published after every sync that
// pushed something.
var SyncEventType = events.NewEventType[SyncEvent]()

// SpawnSprite adds the named atlas sprite to b and creates an entity that
// owns it, with a Transform registered as the sprite's Transformer.
func SpawnSprite(world donburi.World, b *spritebatch.Batch, name string, x, y, depth float64, origin spritebatch.Origin) (*donburi.Entry, error) {
	h, err := b.AddSprite(name, x, y, depth, origin)
	if err != nil {
		return nil, err
	}
	tr, err := spritebatch.NewTransform(b, h)
	if err != nil {
		_ = b.RemoveSprite(h)
		return nil, err
	}
	entry := world.Entry(world.Create(SpriteComponent, TweenComponent))
	SpriteComponent.SetValue(entry, Sprite{Handle: h, Transform: tr})
	return entry, nil
}

// Despawn removes the entity's sprite from b and the entity from the world.
func Despawn(world donburi.World, b *spritebatch.Batch, entry *donburi.Entry) error {
	s := SpriteComponent.Get(entry)
	err := b.RemoveSprite(s.Handle)
	world.Remove(entry.Entity())
	return err
}

// AddTween attaches g to the entity; it runs from the next Update.
func AddTween(entry *donburi.Entry, g *spritebatch.TweenGroup) {
	t := TweenComponent.Get(entry)
	t.Groups = append(t.Groups, g)
}

// Systems drives a batch from a Donburi world.
type Systems struct {
	batch *spritebatch.Batch
	sink  spritebatch.Sink

	sprites *donburi.Query
	tweens  *donburi.Query
}

// NewSystems creates the per-tick systems for b, syncing into sink.
func NewSystems(b *spritebatch.Batch, sink spritebatch.Sink) *Systems {
	return &Systems{
		batch:   b,
		sink:    sink,
		sprites: donburi.NewQuery(filter.Contains(SpriteComponent)),
		tweens:  donburi.NewQuery(filter.Contains(TweenComponent)),
	}
}

// Update runs one tick: tweens advance, dirty transforms flush, the batch
// syncs, and queued SyncEvents are delivered. It returns the first
// transform error, if any; the sync still happens.
func (s *Systems) Update(world donburi.World, dt float32) error {
	s.updateTweens(world, dt)
	err := s.flushTransforms(world)
	s.sync(world)
	SyncEventType.ProcessEvents(world)
	return err
}

func (s *Systems) updateTweens(world donburi.World, dt float32) {
	s.tweens.Each(world, func(entry *donburi.Entry) {
		t := TweenComponent.Get(entry)
		live := t.Groups[:0]
		for _, g := range t.Groups {
			g.Update(dt)
			if !g.Done {
				live = append(live, g)
			}
		}
		clear(t.Groups[len(live):])
		t.Groups = live
	})
}

func (s *Systems) flushTransforms(world donburi.World) error {
	var first error
	s.sprites.Each(world, func(entry *donburi.Entry) {
		sp := SpriteComponent.Get(entry)
		if sp.Transform == nil {
			return
		}
		if err := sp.Transform.Flush(); err != nil && first == nil {
			first = err
		}
	})
	return first
}

func (s *Systems) sync(world donburi.World) {
	pushed := s.batch.Sync(s.sink)
	if pushed.Empty() {
		return
	}
	SyncEventType.Publish(world, SyncEvent{Pushed: pushed, Sprites: s.batch.Len()})
}
