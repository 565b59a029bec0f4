package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Margin != DefaultMargin {
		t.Fatalf("expected margin %d, got %d", DefaultMargin, cfg.Margin)
	}
	want := map[string]RegionType{"f": RegionFull, "h": RegionLeftHalf, "l": RegionRightHalf}
	if len(cfg.Presets) != len(want) {
		t.Fatalf("expected %d presets, got %d", len(want), len(cfg.Presets))
	}
	for key, typ := range want {
		if cfg.Presets[key].Type != typ {
			t.Fatalf("preset %q: expected %q, got %q", key, typ, cfg.Presets[key].Type)
		}
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.File != "" {
		t.Fatalf("expected no file, got %q", res.File)
	}
	if res.Config.LogLevel != "info" {
		t.Fatalf("expected log_level info, got %q", res.Config.LogLevel)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(writeConfig(t, "# empty\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Config.Presets) != 3 {
		t.Fatalf("expected default presets, got %v", res.Config.Presets)
	}
}

func TestLoadFromPath_Overrides(t *testing.T) {
	data := strings.Join([]string{
		"display: \":1\"",
		"log_level: debug",
		"margin: 6",
		"colors:",
		"  selected: \"#3498dbcc\"",
		"presets:",
		"  f: full",
		"  k: top-half",
		"  c:",
		"    type: custom",
		"    x_percent: 25",
		"    y_percent: 0",
		"    width_percent: 50",
		"    height_percent: 100",
		"",
	}, "\n")

	res, err := LoadFromPath(writeConfig(t, data))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Display != ":1" {
		t.Fatalf("expected display :1, got %q", cfg.Display)
	}
	if !cfg.Debug() {
		t.Fatalf("expected debug logging")
	}
	if cfg.Margin != 6 {
		t.Fatalf("expected margin 6, got %d", cfg.Margin)
	}
	if _, ok := cfg.Presets["h"]; ok {
		t.Fatalf("expected presets table to replace defaults")
	}
	if cfg.Presets["k"].Type != RegionTopHalf {
		t.Fatalf("expected k=top-half, got %+v", cfg.Presets["k"])
	}
	custom := cfg.Presets["c"]
	if custom.Type != RegionCustom || custom.XPercent != 25 || custom.WidthPercent != 50 || custom.HeightPercent != 100 {
		t.Fatalf("unexpected custom preset %+v", custom)
	}

	p, err := cfg.Palette()
	if err != nil {
		t.Fatalf("palette: %v", err)
	}
	if got := p.Selected.String(); got != "#3498dbcc" {
		t.Fatalf("expected selected color #3498dbcc, got %s", got)
	}
	if got := p.Backdrop.String(); got != "#00000080" {
		t.Fatalf("expected default backdrop, got %s", got)
	}
}

func TestLoadFromPath_UnknownFieldRejected(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, "rows: 12\n"))
	if err == nil {
		t.Fatalf("expected unknown field error")
	}
	if !strings.Contains(err.Error(), "rows") {
		t.Fatalf("expected error to mention field, got %v", err)
	}
}

func TestLoadFromPath_ValidationErrorHasSource(t *testing.T) {
	path := writeConfig(t, "log_level: info\nmargin: -1\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Path != "margin" {
		t.Fatalf("expected path margin, got %q", verr.Path)
	}
	if verr.Source.Line != 2 {
		t.Fatalf("expected source line 2, got %d", verr.Source.Line)
	}
	if !strings.Contains(err.Error(), ":2:") {
		t.Fatalf("expected file position in error, got %q", err.Error())
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"negative margin", func(c *Config) { c.Margin = -4 }, "margin"},
		{"bad color", func(c *Config) { c.Colors.Cell = "gray" }, "colors.cell"},
		{"nil presets", func(c *Config) { c.Presets = nil }, "presets"},
		{"escape bound", func(c *Config) { c.Presets["Escape"] = Region{Type: RegionFull} }, "presets.Escape"},
		{"unknown region", func(c *Config) { c.Presets["q"] = Region{Type: "middle"} }, "presets.q"},
		{"custom overflow", func(c *Config) {
			c.Presets["c"] = Region{Type: RegionCustom, XPercent: 60, WidthPercent: 50, HeightPercent: 100}
		}, "presets.c"},
		{"custom zero width", func(c *Config) {
			c.Presets["c"] = Region{Type: RegionCustom, HeightPercent: 100}
		}, "presets.c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("expected path %q, got %q", tt.path, verr.Path)
			}
		})
	}
}

func TestBuildEffectiveConfig_PresetWithoutType(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, "presets:\n  c:\n    x_percent: 10\n"))
	if err == nil {
		t.Fatalf("expected error for preset without type")
	}
	if !strings.Contains(err.Error(), "presets.c") {
		t.Fatalf("expected path in error, got %v", err)
	}
}

func TestMarshal_RoundTripsThroughLoad(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Margin = 2
	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	res, err := LoadFromPath(writeConfig(t, string(data)))
	if err != nil {
		t.Fatalf("load marshalled config: %v\n%s", err, data)
	}
	if res.Config.Margin != 2 || len(res.Config.Presets) != 3 {
		t.Fatalf("unexpected config after round trip: %+v", res.Config)
	}
}

func TestExplain(t *testing.T) {
	path := writeConfig(t, "margin: 9\npresets:\n  k: {type: top-half}\n")
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}

	value, src, err := Explain(res, "margin")
	if err != nil {
		t.Fatalf("Explain(margin): %v", err)
	}
	if value != 9 {
		t.Fatalf("expected margin 9, got %#v", value)
	}
	if src.Kind != SourceFile || src.Line != 1 {
		t.Fatalf("expected file source at line 1, got %+v", src)
	}

	value, src, err = Explain(res, "presets.k.type")
	if err != nil {
		t.Fatalf("Explain(presets.k.type): %v", err)
	}
	if value != "top-half" || src.Kind != SourceFile || src.Line != 3 {
		t.Fatalf("unexpected preset explain: %#v %+v", value, src)
	}

	value, src, err = Explain(res, "log_level")
	if err != nil {
		t.Fatalf("Explain(log_level): %v", err)
	}
	if value != "info" || src.Kind != SourceDefault {
		t.Fatalf("expected default info, got %#v %+v", value, src)
	}

	if _, _, err := Explain(res, "gap"); err == nil {
		t.Fatalf("expected unknown path error")
	}
}
