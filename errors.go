package spritebatch

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by errors.Is for any atlas lookup miss.
	ErrNotFound = errors.New("spritebatch: not found")
	// ErrInvalidHandle is matched by errors.Is when a handle refers to a
	// freed or never-allocated slot.
	ErrInvalidHandle = errors.New("spritebatch: invalid handle")
)

// AtlasLookupError is returned when a sprite name is absent from the atlas.
// Reason is set when the entry exists but is malformed or lives on another
// page than the batch draws.
type AtlasLookupError struct {
	Name   string
	Reason string
}

func (e *AtlasLookupError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("spritebatch: atlas sprite %q: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("spritebatch: atlas has no sprite %q", e.Name)
}

func (e *AtlasLookupError) Unwrap() error { return ErrNotFound }

// InvalidHandleError is returned when an operation receives a handle whose
// slot was freed or never allocated.
type InvalidHandleError struct {
	Op     string
	Handle Handle
}

func (e *InvalidHandleError) Error() string {
	return fmt.Sprintf("spritebatch: %s on invalid handle (slot %d, generation %d)",
		e.Op, e.Handle.slot, e.Handle.gen)
}

func (e *InvalidHandleError) Unwrap() error { return ErrInvalidHandle }

// BackingStoreLoadError is returned when atlas metadata or configuration
// cannot be read or parsed at initialization.
type BackingStoreLoadError struct {
	Path string
	Err  error
}

func (e *BackingStoreLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("spritebatch: load: %v", e.Err)
	}
	return fmt.Sprintf("spritebatch: load %s: %v", e.Path, e.Err)
}

func (e *BackingStoreLoadError) Unwrap() error { return e.Err }
