package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/1broseidon/tatami/internal/paint"
)

// RegionType defines preset target regions.
type RegionType string

const (
	RegionFull       RegionType = "full"
	RegionLeftHalf   RegionType = "left-half"
	RegionRightHalf  RegionType = "right-half"
	RegionTopHalf    RegionType = "top-half"
	RegionBottomHalf RegionType = "bottom-half"
	RegionCustom     RegionType = "custom"
)

// Region defines where a preset key places the active window.
type Region struct {
	Type          RegionType `yaml:"type"`
	XPercent      int        `yaml:"x_percent,omitempty"`      // 0-100
	YPercent      int        `yaml:"y_percent,omitempty"`      // 0-100
	WidthPercent  int        `yaml:"width_percent,omitempty"`  // 0-100
	HeightPercent int        `yaml:"height_percent,omitempty"` // 0-100
}

// Colors overrides the overlay palette. Empty values keep the default.
type Colors struct {
	Backdrop string `yaml:"backdrop,omitempty"`
	Cell     string `yaml:"cell,omitempty"`
	Selected string `yaml:"selected,omitempty"`
}

// Config is the effective tatami configuration.
type Config struct {
	// Display overrides $DISPLAY for the X11 connection.
	Display  string            `yaml:"display,omitempty"`
	LogLevel string            `yaml:"log_level"`
	Margin   int               `yaml:"margin"`
	Colors   Colors            `yaml:"colors"`
	Presets  map[string]Region `yaml:"presets"`
}

const DefaultMargin = 4

// CancelKey is reserved and cannot be bound to a preset.
const CancelKey = "Escape"

// DefaultPresets returns the built-in keyboard presets.
func DefaultPresets() map[string]Region {
	return map[string]Region{
		"f": {Type: RegionFull},
		"h": {Type: RegionLeftHalf},
		"l": {Type: RegionRightHalf},
	}
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Margin:   DefaultMargin,
		Presets:  DefaultPresets(),
	}
}

// Debug reports whether per-event diagnostics should be logged.
func (c *Config) Debug() bool {
	return c != nil && c.LogLevel == "debug"
}

// Palette resolves the configured overlay colors on top of the defaults.
func (c *Config) Palette() (paint.Palette, error) {
	p := paint.DefaultPalette()
	overrides := []struct {
		path  string
		value string
		dst   *paint.Color
	}{
		{"colors.backdrop", c.Colors.Backdrop, &p.Backdrop},
		{"colors.cell", c.Colors.Cell, &p.Cell},
		{"colors.selected", c.Colors.Selected, &p.Selected},
	}
	for _, o := range overrides {
		if strings.TrimSpace(o.value) == "" {
			continue
		}
		color, err := paint.ParseColor(o.value)
		if err != nil {
			return paint.Palette{}, &ValidationError{Path: o.path, Err: err}
		}
		*o.dst = color
	}
	return p, nil
}

// PresetKeys returns the bound key names in sorted order.
func (c *Config) PresetKeys() []string {
	keys := make([]string, 0, len(c.Presets))
	for key := range c.Presets {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks the effective configuration.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	if c.Margin < 0 {
		return &ValidationError{Path: "margin", Err: fmt.Errorf("margin must be >= 0")}
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	if c.Presets == nil {
		return &ValidationError{Path: "presets", Err: fmt.Errorf("presets must not be null")}
	}
	for _, key := range c.PresetKeys() {
		path := "presets." + key
		if strings.TrimSpace(key) == "" {
			return &ValidationError{Path: "presets", Err: fmt.Errorf("presets contains an empty key name")}
		}
		if strings.EqualFold(key, CancelKey) {
			return &ValidationError{Path: path, Err: fmt.Errorf("%s is reserved for cancel", CancelKey)}
		}
		region := c.Presets[key]
		if err := validateRegion(region); err != nil {
			return &ValidationError{Path: path, Err: err}
		}
	}
	return nil
}

func validateRegion(region Region) error {
	switch region.Type {
	case RegionFull, RegionLeftHalf, RegionRightHalf, RegionTopHalf, RegionBottomHalf:
		return nil
	case RegionCustom:
		if region.XPercent < 0 || region.XPercent > 100 {
			return fmt.Errorf("x_percent must be between 0 and 100")
		}
		if region.YPercent < 0 || region.YPercent > 100 {
			return fmt.Errorf("y_percent must be between 0 and 100")
		}
		if region.WidthPercent <= 0 || region.WidthPercent > 100 {
			return fmt.Errorf("width_percent must be between 1 and 100")
		}
		if region.HeightPercent <= 0 || region.HeightPercent > 100 {
			return fmt.Errorf("height_percent must be between 1 and 100")
		}
		if region.XPercent+region.WidthPercent > 100 || region.YPercent+region.HeightPercent > 100 {
			return fmt.Errorf("custom region must stay within the screen")
		}
		return nil
	default:
		return fmt.Errorf("invalid region type %q", region.Type)
	}
}

// ValidationError ties a configuration problem to its YAML path and, when
// known, the file position that set it.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
