package md2card

import (
	"fmt"
	"strings"
	"time"
)

// Paging mode constants.
const (
	ModeSeparator = "separator"
	ModeAutoFit   = "auto-fit"
	ModeAutoSplit = "auto-split"
	ModeDynamic   = "dynamic"
)

// Default canvas dimensions (3:4 aspect ratio at 1080 wide).
const (
	DefaultWidth     = 1080
	DefaultHeight    = 1440
	DefaultMaxHeight = 4320
	DefaultDPR       = 2
)

// Card chrome geometry in CSS pixels. The outer container and the inner
// white panel each pad the content on both sides, so the usable interior
// on each axis is the canvas dimension minus interiorChrome.
const (
	cardPadding    = 50
	innerPadding   = 60
	interiorChrome = 2 * (cardPadding + innerPadding)
)

// LayoutConfig describes the card canvas and rendering strategy.
type LayoutConfig struct {
	Width            int    // canvas width in CSS pixels
	Height           int    // canvas height (minimum height in dynamic mode)
	MaxHeight        int    // dynamic mode growth ceiling; 0 means Height
	DevicePixelRatio int    // physical pixels per CSS pixel
	Theme            string // visual theme name; unknown names fall back to default
	Mode             string // paging mode, one of the Mode* constants
}

// DefaultLayout returns a layout with default values.
func DefaultLayout() LayoutConfig {
	return LayoutConfig{
		Width:            DefaultWidth,
		Height:           DefaultHeight,
		MaxHeight:        DefaultMaxHeight,
		DevicePixelRatio: DefaultDPR,
		Theme:            ThemeDefault,
		Mode:             ModeSeparator,
	}
}

// normalized fills derivable zero values and canonicalizes the mode casing
// without mutating the receiver. Every mode comparison downstream is against
// the lowercase Mode* constants, so this is the single place casing is
// resolved.
func (c LayoutConfig) normalized() LayoutConfig {
	if c.MaxHeight == 0 {
		c.MaxHeight = c.Height
	}
	if c.Mode == "" {
		c.Mode = ModeSeparator
	}
	c.Mode = strings.ToLower(c.Mode)
	return c
}

// Validate checks that the layout can be rendered.
// Theme is not validated here: unknown themes fall back deterministically.
func (c LayoutConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	}
	if c.MaxHeight < c.Height {
		return fmt.Errorf("%w: %d < %d", ErrInvalidMaxHeight, c.MaxHeight, c.Height)
	}
	if c.DevicePixelRatio <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPixelRatio, c.DevicePixelRatio)
	}
	if !isValidMode(c.Mode) {
		return fmt.Errorf("%w: %q", ErrInvalidMode, c.Mode)
	}
	return nil
}

// isValidMode checks if mode is a known paging mode (case-insensitive).
func isValidMode(mode string) bool {
	switch strings.ToLower(mode) {
	case ModeSeparator, ModeAutoFit, ModeAutoSplit, ModeDynamic:
		return true
	}
	return false
}

// Document is a parsed source document: front-matter metadata plus body.
// Immutable after parse.
type Document struct {
	Metadata map[string]any
	Body     string
}

// metaString returns a metadata value if present and a string.
func (d Document) metaString(key string) string {
	if v, ok := d.Metadata[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Title returns the document title, or "" when absent.
func (d Document) Title() string { return d.metaString("title") }

// Subtitle returns the document subtitle, or "" when absent.
func (d Document) Subtitle() string { return d.metaString("subtitle") }

// Emoji returns the cover emoji, or "" when absent.
func (d Document) Emoji() string { return d.metaString("emoji") }

// HasCover reports whether a cover image should be generated.
// Documents with neither title nor emoji get no cover.
func (d Document) HasCover() bool {
	return d.Title() != "" || d.Emoji() != ""
}

// Card is one rendered output image of a run.
type Card struct {
	Index    int    // 1-based position within the run
	Total    int    // total number of body cards in the run
	Content  string // content bundle assigned by the paginator
	Path     string // written PNG path
	HeightPx int    // final capture height in CSS pixels
}

// Input contains rendering parameters for one run.
type Input struct {
	Source    string       // raw document text (front matter + body)
	OutputDir string       // destination directory for PNG files
	Layout    LayoutConfig // canvas and strategy configuration
}

// Result describes the images produced by a successful run.
type Result struct {
	CoverPath     string // empty when no cover was generated
	CoverHeightPx int
	Cards         []Card // body cards in order
}

// Paths returns all written image paths, cover first when present.
func (r *Result) Paths() []string {
	paths := make([]string, 0, len(r.Cards)+1)
	if r.CoverPath != "" {
		paths = append(paths, r.CoverPath)
	}
	for _, c := range r.Cards {
		paths = append(paths, c.Path)
	}
	return paths
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout time.Duration
	settle  time.Duration
}

// DefaultTimeout bounds each browser operation wait.
const DefaultTimeout = 30 * time.Second

// defaultSettleDelay absorbs late style application (web font swap) after
// the load event; it is a heuristic, not a correctness guarantee.
const defaultSettleDelay = 500 * time.Millisecond

// WithTimeout sets the per-operation browser wait bound.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2card: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithSettleDelay sets the post-load font/asset settle delay.
func WithSettleDelay(d time.Duration) Option {
	if d < 0 {
		panic("md2card: WithSettleDelay duration must not be negative")
	}
	return func(s *Service) {
		s.cfg.settle = d
	}
}

// WithRenderer injects a custom render backend, replacing headless Chrome.
func WithRenderer(r Renderer) Option {
	return func(s *Service) {
		s.renderer = r
	}
}
