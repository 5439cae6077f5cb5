package spritebatch

// Sink receives mesh buffers from Batch.Sync. It is write-only from the
// batch's point of view. The slices passed in are the batch's own buffers
// and are only valid for the duration of the call; sinks that keep data must
// copy it.
type Sink interface {
	// Clear drops all mesh data ahead of a full rebuild.
	Clear()
	SetPositions(positions []Vec3)
	SetUVs(uvs []Vec2)
	SetColors(colors []Color)
	SetIndices(indices []uint32)
	// RecalculateBounds recomputes the mesh bounds from the last positions.
	RecalculateBounds()
}
