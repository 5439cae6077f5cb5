// Package spritebatch draws many independent 2D quad sprites as one mesh for
// [Ebitengine].
//
// A [Batch] owns four parallel buffers (positions, UVs, colors and triangle
// indices) split into fixed-size slots: slot i covers entries [4i, 4i+4) of
// the vertex buffers and [6i, 6i+6) of the index buffer. Sprites are
// addressed by [Handle] values, never by references into the buffers.
//
// # Quick start
//
//	atlas, err := spritebatch.LoadAtlasFile("sprites.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	batch := spritebatch.New(atlas, spritebatch.DefaultOptions())
//	mesh := spritebatch.NewMesh(page)
//
//	hero, err := batch.AddSprite("hero.png", 100, 50, 1, spritebatch.OriginTopLeft)
//
// Then, once per frame after all mutations:
//
//	batch.Sync(mesh)
//	mesh.Draw(screen, nil)
//
// # Frame protocol
//
// Mutations (add, remove, hide, show, the Update* and Set* calls) record
// what changed in a [ChangeSet]. [Batch.Sync] consumes that set exactly
// once: a slot-count change replaces every buffer in the [Sink]; otherwise
// only the dirty buffers are pushed. Mutations made after Sync belong to the
// next frame.
//
// The pool grows by [Options.GrowBy] slots when full and never shrinks.
// Removed sprites leave a zero-area quad whose slot is reused first-fit.
// Growth reallocates the buffers; slices from [Batch.Positions] or
// [Batch.QuadPositions] must be fetched again when [Batch.Epoch] changes.
//
// # Transforms
//
// [Transform] is the built-in per-sprite transform collaborator. It writes
// rotated and scaled quads directly into the position buffer, and is what
// [Batch.ShowSprite] asks to restore a hidden sprite. [TweenGroup] animates
// transforms and colors via [gween].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package spritebatch
