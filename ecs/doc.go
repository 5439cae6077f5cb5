// Package ecs provides ECS adapters for spritebatch.
//
// [SpriteComponent] attaches a batch sprite and its [spritebatch.Transform]
// to a [Donburi] entity. [Systems.Update] flushes dirty transforms, advances
// tweens and syncs the batch to its sink once per tick, publishing what was
// pushed as a [SyncEvent] on [SyncEventType].
//
// Usage:
//
//	sys := ecs.NewSystems(batch, mesh)
//	entry, err := ecs.SpawnSprite(world, batch, "hero.png", 100, 50, 1, spritebatch.OriginCenter)
//	...
//	sys.Update(world, dt) // in Game.Update
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
