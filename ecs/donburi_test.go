package ecs

import (
	"errors"
	"testing"

	"github.com/phanxgames/spritebatch"
	"github.com/tanema/gween/ease"

	"github.com/yohamta/donburi"
)

const atlasJSON = `{
	"frames": {"hero.png": {"frame": {"x": 0, "y": 0, "w": 16, "h": 16}}},
	"meta": {"size": {"w": 64, "h": 64}}
}`

type countingSink struct {
	positions int
	clears    int
}

func (s *countingSink) Clear()                          { s.clears++ }
func (s *countingSink) SetPositions([]spritebatch.Vec3) { s.positions++ }
func (s *countingSink) SetUVs([]spritebatch.Vec2)       {}
func (s *countingSink) SetColors([]spritebatch.Color)   {}
func (s *countingSink) SetIndices([]uint32)             {}
func (s *countingSink) RecalculateBounds()              {}

func newFixture(t *testing.T) (donburi.World, *spritebatch.Batch, *countingSink, *Systems) {
	t.Helper()
	atlas, err := spritebatch.LoadAtlas([]byte(atlasJSON))
	if err != nil {
		t.Fatal(err)
	}
	b := spritebatch.New(atlas, spritebatch.DefaultOptions())
	sink := &countingSink{}
	return donburi.NewWorld(), b, sink, NewSystems(b, sink)
}

func TestSpawnSprite(t *testing.T) {
	world, b, _, _ := newFixture(t)
	entry, err := SpawnSprite(world, b, "hero.png", 10, 20, 1, spritebatch.OriginTopLeft)
	if err != nil {
		t.Fatal(err)
	}
	sp := SpriteComponent.Get(entry)
	if !b.Valid(sp.Handle) {
		t.Error("spawned handle not valid")
	}
	if sp.Transform == nil || sp.Transform.X != 10 || sp.Transform.Y != 20 {
		t.Errorf("transform = %+v", sp.Transform)
	}
	if world.Len() != 1 {
		t.Errorf("world.Len() = %d, want 1", world.Len())
	}
}

func TestSpawnSprite_UnknownName(t *testing.T) {
	world, b, _, _ := newFixture(t)
	if _, err := SpawnSprite(world, b, "ghost.png", 0, 0, 0, spritebatch.OriginTopLeft); !errors.Is(err, spritebatch.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if world.Len() != 0 || b.Len() != 0 {
		t.Errorf("world/batch = %d/%d, want 0/0", world.Len(), b.Len())
	}
}

func TestSystems_UpdatePublishesSync(t *testing.T) {
	world, b, sink, sys := newFixture(t)
	entry, err := SpawnSprite(world, b, "hero.png", 0, 0, 1, spritebatch.OriginTopLeft)
	if err != nil {
		t.Fatal(err)
	}

	var events []SyncEvent
	SyncEventType.Subscribe(world, func(w donburi.World, e SyncEvent) {
		events = append(events, e)
	})

	if err := sys.Update(world, 1.0/60); err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || !events[0].Pushed.Full() || events[0].Sprites != 1 {
		t.Fatalf("events = %+v, want one full sync", events)
	}

	sys.Update(world, 1.0/60)
	if len(events) != 1 {
		t.Errorf("idle tick published %d events", len(events)-1)
	}

	SpriteComponent.Get(entry).Transform.SetPosition(5, 5)
	sys.Update(world, 1.0/60)
	if len(events) != 2 || events[1].Pushed.String() != "vertices|bounds" {
		t.Errorf("events = %+v, want a vertices|bounds sync", events)
	}
	if sink.clears != 1 {
		t.Errorf("clears = %d, want 1", sink.clears)
	}
}

func TestSystems_TweensRunAndDrop(t *testing.T) {
	world, b, _, sys := newFixture(t)
	entry, err := SpawnSprite(world, b, "hero.png", 0, 0, 1, spritebatch.OriginTopLeft)
	if err != nil {
		t.Fatal(err)
	}
	tr := SpriteComponent.Get(entry).Transform
	AddTween(entry, spritebatch.TweenPosition(tr, 10, 0, 1, ease.Linear))

	sys.Update(world, 0.5)
	if tr.X != 5 {
		t.Errorf("X = %v, want 5", tr.X)
	}
	sys.Update(world, 0.5)
	if got := len(TweenComponent.Get(entry).Groups); got != 0 {
		t.Errorf("finished groups kept: %d", got)
	}
	q, _ := b.QuadPositions(SpriteComponent.Get(entry).Handle)
	if q[0].X != 10 {
		t.Errorf("quad x = %v, want 10", q[0].X)
	}
}

func TestDespawn(t *testing.T) {
	world, b, _, sys := newFixture(t)
	entry, err := SpawnSprite(world, b, "hero.png", 0, 0, 1, spritebatch.OriginTopLeft)
	if err != nil {
		t.Fatal(err)
	}
	h := SpriteComponent.Get(entry).Handle
	if err := Despawn(world, b, entry); err != nil {
		t.Fatal(err)
	}
	if b.Valid(h) || b.Len() != 0 {
		t.Error("sprite still live after despawn")
	}
	if world.Len() != 0 {
		t.Errorf("world.Len() = %d, want 0", world.Len())
	}
	if err := sys.Update(world, 1.0/60); err != nil {
		t.Errorf("Update after despawn = %v", err)
	}
}
