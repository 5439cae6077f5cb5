package spritebatch

import "log/slog"

// Stats counts sync and pool activity over the lifetime of a Batch.
type Stats struct {
	Syncs         int // Sync calls that pushed anything
	FullRebuilds  int // syncs that replaced every buffer
	PositionPush  int
	UVPush        int
	ColorPush     int
	BoundsRecalcs int
	Growths       int // pool reallocations after creation
}

func (s *Stats) record(pushed ChangeSet) {
	if pushed.Empty() {
		return
	}
	s.Syncs++
	if pushed.Full() {
		s.FullRebuilds++
		return
	}
	if pushed.Has(ChangeVertices) {
		s.PositionPush++
	}
	if pushed.Has(ChangeUVs) {
		s.UVPush++
	}
	if pushed.Has(ChangeColors) {
		s.ColorPush++
	}
	if pushed.Has(ChangeBounds) {
		s.BoundsRecalcs++
	}
}

// Stats returns the batch's activity counters.
func (b *Batch) Stats() Stats { return b.stats }

// SetDebugMode enables or disables debug mode. When enabled, every non-empty
// Sync and every pool growth is logged at debug level, and rejected handles
// are logged as warnings.
func (b *Batch) SetDebugMode(enabled bool) {
	b.debug = enabled
}

func (b *Batch) debugLog(pushed ChangeSet) {
	Logger().Debug("spritebatch: sync",
		slog.String("pushed", pushed.String()),
		slog.Int("sprites", b.pool.Len()),
		slog.Int("slots", b.pool.Cap()),
		slog.Uint64("epoch", b.pool.epoch))
}
