package spritebatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
)

// AtlasEntry describes one named sprite inside a texture atlas. Value type,
// never modified after load.
type AtlasEntry struct {
	Frame Rect   // pixel rect of the sprite on its atlas page
	Size  Vec2   // untrimmed source size, used as the quad size
	UV    UVRect // Frame normalized against the page size
	Page  int    // atlas page index (0 for single-page atlases)
}

// Atlas is a read-only table of named sprites built from TexturePacker JSON.
type Atlas struct {
	entries   map[string]AtlasEntry
	malformed map[string]string
	pageSizes []Vec2
}

// Entry returns the named sprite. Unknown or malformed names fail with
// *AtlasLookupError.
func (a *Atlas) Entry(name string) (AtlasEntry, error) {
	if e, ok := a.entries[name]; ok {
		return e, nil
	}
	err := &AtlasLookupError{Name: name, Reason: a.malformed[name]}
	Logger().Warn("spritebatch: atlas lookup failed", slog.String("name", name), slog.String("reason", err.Reason))
	return AtlasEntry{}, err
}

// UVRect returns the named sprite's normalized UV rect.
func (a *Atlas) UVRect(name string) (UVRect, error) {
	e, err := a.Entry(name)
	return e.UV, err
}

// Frame returns the named sprite's pixel frame on its atlas page.
func (a *Atlas) Frame(name string) (Rect, error) {
	e, err := a.Entry(name)
	return e.Frame, err
}

// Has reports whether name resolves to a usable entry.
func (a *Atlas) Has(name string) bool {
	_, ok := a.entries[name]
	return ok
}

// Len returns the number of usable entries.
func (a *Atlas) Len() int { return len(a.entries) }

// Names returns the usable entry names in sorted order.
func (a *Atlas) Names() []string {
	names := make([]string, 0, len(a.entries))
	for n := range a.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// PageSize returns the pixel size of the given atlas page.
func (a *Atlas) PageSize(page int) Vec2 {
	if page < 0 || page >= len(a.pageSizes) {
		return Vec2{}
	}
	return a.pageSizes[page]
}

// Pages returns the number of atlas pages.
func (a *Atlas) Pages() int { return len(a.pageSizes) }

// LoadAtlas parses TexturePacker JSON. Supported layouts:
//
//   - hash: {"frames": {"name": {...}}, "meta": {"size": {...}}}
//   - array: {"frames": [{"filename": "name", ...}], "meta": {"size": {...}}}
//   - multi-page: {"textures": [{"size": {...}, "frames": ...}, ...]}
//
// Entries with an unusable frame are kept aside and fail at lookup time.
func LoadAtlas(jsonData []byte) (*Atlas, error) {
	var doc struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
		Meta     struct {
			Size jsonSize `json:"size"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("spritebatch: parse atlas JSON: %w", err)
	}

	atlas := &Atlas{
		entries:   make(map[string]AtlasEntry),
		malformed: make(map[string]string),
	}

	switch {
	case doc.Textures != nil:
		if err := parseTextures(doc.Textures, atlas); err != nil {
			return nil, err
		}
	case doc.Frames != nil:
		size := Vec2{float64(doc.Meta.Size.W), float64(doc.Meta.Size.H)}
		atlas.pageSizes = append(atlas.pageSizes, size)
		if err := parseFrames(doc.Frames, 0, size, atlas); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("spritebatch: atlas JSON has neither \"frames\" nor \"textures\" key")
	}

	return atlas, nil
}

// LoadAtlasFile reads and parses an atlas JSON file. Any failure is
// reported as *BackingStoreLoadError.
func LoadAtlasFile(path string) (*Atlas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &BackingStoreLoadError{Path: path, Err: err}
	}
	atlas, err := LoadAtlas(data)
	if err != nil {
		return nil, &BackingStoreLoadError{Path: path, Err: err}
	}
	Logger().Info("spritebatch: atlas loaded",
		slog.String("path", path),
		slog.Int("entries", atlas.Len()),
		slog.Int("malformed", len(atlas.malformed)))
	return atlas, nil
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Filename   string    `json:"filename"`
	Frame      *jsonRect `json:"frame"`
	Rotated    bool      `json:"rotated"`
	SourceSize *jsonSize `json:"sourceSize"`
}

type jsonTexturePage struct {
	Image  string          `json:"image"`
	Size   jsonSize        `json:"size"`
	Frames json.RawMessage `json:"frames"`
}

// parseFrames accepts either the hash layout or the array layout.
func parseFrames(raw json.RawMessage, page int, pageSize Vec2, atlas *Atlas) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var frames []jsonFrame
		if err := json.Unmarshal(trimmed, &frames); err != nil {
			return fmt.Errorf("spritebatch: parse atlas frames: %w", err)
		}
		for _, f := range frames {
			atlas.add(f.Filename, f, page, pageSize)
		}
		return nil
	}

	var frames map[string]jsonFrame
	if err := json.Unmarshal(trimmed, &frames); err != nil {
		return fmt.Errorf("spritebatch: parse atlas frames: %w", err)
	}
	for name, f := range frames {
		atlas.add(name, f, page, pageSize)
	}
	return nil
}

func parseTextures(raw json.RawMessage, atlas *Atlas) error {
	var textures []jsonTexturePage
	if err := json.Unmarshal(raw, &textures); err != nil {
		return fmt.Errorf("spritebatch: parse atlas textures array: %w", err)
	}
	for i, tex := range textures {
		size := Vec2{float64(tex.Size.W), float64(tex.Size.H)}
		atlas.pageSizes = append(atlas.pageSizes, size)
		if tex.Frames == nil {
			continue
		}
		if err := parseFrames(tex.Frames, i, size, atlas); err != nil {
			return err
		}
	}
	return nil
}

func (a *Atlas) add(name string, f jsonFrame, page int, pageSize Vec2) {
	if name == "" {
		return
	}
	if reason := frameProblem(f, pageSize); reason != "" {
		a.malformed[name] = reason
		return
	}
	a.entries[name] = frameToEntry(f, page, pageSize)
}

func frameProblem(f jsonFrame, pageSize Vec2) string {
	switch {
	case f.Frame == nil:
		return "missing frame"
	case f.Frame.W <= 0 || f.Frame.H <= 0:
		return "empty frame"
	case f.Rotated:
		return "rotated frames are not supported"
	case pageSize.X <= 0 || pageSize.Y <= 0:
		return "unknown page size"
	}
	return ""
}

func frameToEntry(f jsonFrame, page int, pageSize Vec2) AtlasEntry {
	fr := *f.Frame
	frame := Rect{X: float64(fr.X), Y: float64(fr.Y), Width: float64(fr.W), Height: float64(fr.H)}
	size := Vec2{frame.Width, frame.Height}
	if f.SourceSize != nil && f.SourceSize.W > 0 && f.SourceSize.H > 0 {
		size = Vec2{float64(f.SourceSize.W), float64(f.SourceSize.H)}
	}
	return AtlasEntry{
		Frame: frame,
		Size:  size,
		UV:    NewUVRect(frame.X, frame.Y, frame.Width, frame.Height, pageSize),
		Page:  page,
	}
}
