package spritebatch

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Winding selects the triangle winding order used for every quad in a batch.
type Winding uint8

const (
	WindingCCW Winding = iota // counter-clockwise
	WindingCW                 // clockwise
)

func (w Winding) String() string {
	switch w {
	case WindingCCW:
		return "ccw"
	case WindingCW:
		return "cw"
	default:
		return fmt.Sprintf("Winding(%d)", uint8(w))
	}
}

// ParseWinding parses "ccw" or "cw" (case-insensitive).
func ParseWinding(s string) (Winding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ccw", "counterclockwise", "counter-clockwise":
		return WindingCCW, nil
	case "cw", "clockwise":
		return WindingCW, nil
	}
	return 0, fmt.Errorf("spritebatch: unknown winding %q", s)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (w *Winding) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseWinding(s)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (w Winding) MarshalYAML() (any, error) {
	return w.String(), nil
}

const (
	defaultInitialCapacity = 10
	defaultGrowBy          = 5
)

// Options configures a Batch. Winding is fixed for the lifetime of the batch.
// A batch draws from a single atlas page; Page selects it.
type Options struct {
	InitialCapacity int     `yaml:"initial_capacity"`
	GrowBy          int     `yaml:"grow_by"`
	Winding         Winding `yaml:"winding"`
	Page            int     `yaml:"page"`
}

// DefaultOptions returns 10 initial slots, growth by 5 and CCW winding.
func DefaultOptions() Options {
	return Options{
		InitialCapacity: defaultInitialCapacity,
		GrowBy:          defaultGrowBy,
		Winding:         WindingCCW,
	}
}

// withDefaults fills zero or negative sizes with their defaults.
func (o Options) withDefaults() Options {
	if o.InitialCapacity <= 0 {
		o.InitialCapacity = defaultInitialCapacity
	}
	if o.GrowBy <= 0 {
		o.GrowBy = defaultGrowBy
	}
	if o.Page < 0 {
		o.Page = 0
	}
	return o
}

// LoadOptions parses YAML configuration. Keys missing from data keep their
// DefaultOptions values.
//
//	initial_capacity: 64
//	grow_by: 16
//	winding: cw
func LoadOptions(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("spritebatch: unmarshal options: %w", err)
	}
	return opts.withDefaults(), nil
}

// LoadOptionsFile reads and parses a YAML configuration file.
func LoadOptionsFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, &BackingStoreLoadError{Path: path, Err: err}
	}
	opts, err := LoadOptions(data)
	if err != nil {
		return Options{}, &BackingStoreLoadError{Path: path, Err: err}
	}
	return opts, nil
}
