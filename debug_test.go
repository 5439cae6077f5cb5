package spritebatch

import (
	"strings"
	"testing"
)

func TestDebugMode_LogsSyncAndGrowth(t *testing.T) {
	buf := captureLogs(t)
	b := New(nil, Options{InitialCapacity: 1, GrowBy: 1})
	b.SetDebugMode(true)

	b.AddSpriteRect(Rect{Width: 1, Height: 1}, UVRect{}, 0, OriginTopLeft)
	b.AddSpriteRect(Rect{Width: 1, Height: 1}, UVRect{}, 0, OriginTopLeft)
	b.Sync(&recordingSink{})

	out := buf.String()
	if !strings.Contains(out, "pool grown") {
		t.Errorf("log missing growth: %q", out)
	}
	if !strings.Contains(out, "pushed=vertices|uvs|colors|slots") {
		t.Errorf("log missing sync line: %q", out)
	}
}

func TestDebugMode_WarnsOnInvalidHandle(t *testing.T) {
	buf := captureLogs(t)
	b := New(nil, DefaultOptions())

	b.HideSprite(Handle{})
	if buf.Len() != 0 {
		t.Errorf("logged without debug mode: %q", buf.String())
	}

	b.SetDebugMode(true)
	b.HideSprite(Handle{})
	if !strings.Contains(buf.String(), "HideSprite on invalid handle") {
		t.Errorf("log = %q", buf.String())
	}
}

func TestDebugMode_OffIsSilent(t *testing.T) {
	buf := captureLogs(t)
	b := New(nil, DefaultOptions())
	b.AddSpriteRect(Rect{Width: 1, Height: 1}, UVRect{}, 0, OriginTopLeft)
	b.Sync(&recordingSink{})
	if buf.Len() != 0 {
		t.Errorf("logged without debug mode: %q", buf.String())
	}
}
