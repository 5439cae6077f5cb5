package spritebatch

import "strings"

// Change is one category of pending mesh work.
type Change uint8

const (
	ChangeVertices  Change = 1 << iota // positions need re-upload
	ChangeUVs                          // texture coordinates need re-upload
	ChangeColors                       // vertex colors need re-upload
	ChangeSlotCount                    // slot layout changed; full rebuild required
	ChangeBounds                       // mesh bounds are stale
)

var changeNames = [...]struct {
	c    Change
	name string
}{
	{ChangeVertices, "vertices"},
	{ChangeUVs, "uvs"},
	{ChangeColors, "colors"},
	{ChangeSlotCount, "slots"},
	{ChangeBounds, "bounds"},
}

// ChangeSet accumulates the changes made during a frame. A Batch hands its
// pending ChangeSet to Sync exactly once; the batch starts the next frame
// with an empty set.
type ChangeSet struct {
	bits Change
}

// Empty reports whether nothing is dirty.
func (c ChangeSet) Empty() bool { return c.bits == 0 }

// Has reports whether every bit of ch is set.
func (c ChangeSet) Has(ch Change) bool { return c.bits&ch == ch }

// Full reports whether the set requires a full buffer rebuild.
func (c ChangeSet) Full() bool { return c.Has(ChangeSlotCount) }

func (c *ChangeSet) mark(ch Change) { c.bits |= ch }

// take returns the accumulated set and resets c.
func (c *ChangeSet) take() ChangeSet {
	out := *c
	c.bits = 0
	return out
}

func (c ChangeSet) String() string {
	if c.bits == 0 {
		return "none"
	}
	var b strings.Builder
	for _, n := range changeNames {
		if c.bits&n.c == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteString(n.name)
	}
	return b.String()
}
