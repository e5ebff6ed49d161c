// Package config holds the per-build playback constants: canvas size, frame
// count, frame rate and frame scheme. Values come from an INI file:
//
//	[animation]
//	width = 144
//	height = 108
//	frames = 546
//	fps = 12
//	; byte-escape, tagged or quadtree
//	scheme = byte-escape
//
//	[asset]
//	path = frames.bin
//	window = 0
//
//	[display]
//	color = false
//	round = false
//	surface_width = 144
//	surface_height = 168
//	derive_from_surface = false
package config

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/unknwon/goconfig"

	"github.com/svanichkin/flick/internal/sink"
)

var (
	ErrInvalid       = errors.New("config: invalid value")
	ErrUnknownScheme = errors.New("config: unknown scheme")
)

// Scheme selects how frames are encoded in the stream.
type Scheme uint8

const (
	// SchemeByteEscape is run-length deltas with byte-escape integers.
	SchemeByteEscape Scheme = iota
	// SchemeTagged is run-length deltas with 2-bit tagged integers.
	SchemeTagged
	// SchemeQuadtree is self-contained quadtree frames.
	SchemeQuadtree
)

var schemeNames = [...]string{
	SchemeByteEscape: "byte-escape",
	SchemeTagged:     "tagged",
	SchemeQuadtree:   "quadtree",
}

func (s Scheme) String() string {
	if int(s) < len(schemeNames) {
		return schemeNames[s]
	}
	return fmt.Sprintf("Scheme(%d)", uint8(s))
}

// ParseScheme maps a scheme name to its value.
func ParseScheme(name string) (Scheme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range schemeNames {
		if n == name {
			return Scheme(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
}

// Config is the fixed playback configuration.
type Config struct {
	Width  int
	Height int
	Frames int
	FPS    int
	Scheme Scheme

	AssetPath string
	// Window overrides the chunk length in bytes; 0 means Width*Height.
	Window int

	Color             bool
	Round             bool
	SurfaceWidth      int
	SurfaceHeight     int
	DeriveFromSurface bool
}

// Default returns the Pebble build: a 144×108 clip of 546 frames at 12 FPS
// on a 144×168 monochrome screen.
func Default() Config {
	return Config{
		Width:         144,
		Height:        108,
		Frames:        546,
		FPS:           12,
		Scheme:        SchemeByteEscape,
		SurfaceWidth:  144,
		SurfaceHeight: 168,
	}
}

// Load reads an INI file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cf, err := goconfig.LoadConfigFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	return fromFile(cf)
}

// Parse reads INI data over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cf, err := goconfig.LoadFromData(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	return fromFile(cf)
}

func fromFile(cf *goconfig.ConfigFile) (Config, error) {
	c := Default()
	for _, k := range []struct {
		section, key string
		dst          *int
	}{
		{"animation", "width", &c.Width},
		{"animation", "height", &c.Height},
		{"animation", "frames", &c.Frames},
		{"animation", "fps", &c.FPS},
		{"asset", "window", &c.Window},
		{"display", "surface_width", &c.SurfaceWidth},
		{"display", "surface_height", &c.SurfaceHeight},
	} {
		if !has(cf, k.section, k.key) {
			continue
		}
		v, err := cf.Int(k.section, k.key)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s.%s: %v", ErrInvalid, k.section, k.key, err)
		}
		*k.dst = v
	}
	for _, k := range []struct {
		section, key string
		dst          *bool
	}{
		{"display", "color", &c.Color},
		{"display", "round", &c.Round},
		{"display", "derive_from_surface", &c.DeriveFromSurface},
	} {
		if !has(cf, k.section, k.key) {
			continue
		}
		v, err := cf.Bool(k.section, k.key)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s.%s: %v", ErrInvalid, k.section, k.key, err)
		}
		*k.dst = v
	}

	if has(cf, "animation", "scheme") {
		s, err := ParseScheme(cf.MustValue("animation", "scheme"))
		if err != nil {
			return Config{}, err
		}
		c.Scheme = s
	}
	c.AssetPath = cf.MustValue("asset", "path", c.AssetPath)

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func has(cf *goconfig.ConfigFile, section, key string) bool {
	_, err := cf.GetValue(section, key)
	return err == nil
}

// Validate checks that the configuration describes a playable animation.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalid, c.Width, c.Height)
	case c.Frames <= 0:
		return fmt.Errorf("%w: frames %d", ErrInvalid, c.Frames)
	case c.FPS <= 0 || c.FPS > 1000:
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.FPS)
	case c.Window < 0:
		return fmt.Errorf("%w: window %d", ErrInvalid, c.Window)
	case c.SurfaceWidth <= 0 || c.SurfaceHeight <= 0:
		return fmt.Errorf("%w: surface %dx%d", ErrInvalid, c.SurfaceWidth, c.SurfaceHeight)
	case int(c.Scheme) >= len(schemeNames):
		return fmt.Errorf("%w: %v", ErrUnknownScheme, c.Scheme)
	}
	return nil
}

// FrameInterval is the time between two redraws.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// ChunkWindow is the number of bytes loaded per frame.
func (c *Config) ChunkWindow() int {
	if c.Window > 0 {
		return c.Window
	}
	return c.Width * c.Height
}

// SurfaceBounds returns the configured physical surface rectangle.
func (c *Config) SurfaceBounds() image.Rectangle {
	return image.Rect(0, 0, c.SurfaceWidth, c.SurfaceHeight)
}

// Canvas returns the logical canvas size. Quadtree builds may derive it from
// the surface instead of the configured width and height.
func (c *Config) Canvas(surface image.Rectangle) (w, h int) {
	if c.Scheme == SchemeQuadtree && c.DeriveFromSurface {
		return sink.LogicalSize(surface, c.Round)
	}
	return c.Width, c.Height
}
