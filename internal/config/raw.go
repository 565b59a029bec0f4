package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// RawRegion supports either the shorthand:
//
//	presets:
//	  f: full
//
// or the full form:
//
//	presets:
//	  c:
//	    type: custom
//	    x_percent: 25
//	    width_percent: 50
//	    height_percent: 100
type RawRegion struct {
	Type          *RegionType `yaml:"type"`
	XPercent      *int        `yaml:"x_percent"`
	YPercent      *int        `yaml:"y_percent"`
	WidthPercent  *int        `yaml:"width_percent"`
	HeightPercent *int        `yaml:"height_percent"`
}

func (r *RawRegion) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("preset must be a region name or mapping")
		}
		t := RegionType(value.Value)
		*r = RawRegion{Type: &t}
		return nil
	case yaml.MappingNode:
		// Alias type avoids recursing back into this method.
		type plain RawRegion
		var out plain
		if err := value.Decode(&out); err != nil {
			return err
		}
		*r = RawRegion(out)
		return nil
	default:
		return fmt.Errorf("preset must be a region name or mapping")
	}
}

type RawColors struct {
	Backdrop *string `yaml:"backdrop"`
	Cell     *string `yaml:"cell"`
	Selected *string `yaml:"selected"`
}

// RawConfig mirrors the YAML file. Nil fields keep the default.
type RawConfig struct {
	Display  *string              `yaml:"display"`
	LogLevel *string              `yaml:"log_level"`
	Margin   *int                 `yaml:"margin"`
	Colors   *RawColors           `yaml:"colors"`
	Presets  map[string]RawRegion `yaml:"presets"`
}

// BuildEffectiveConfig applies raw values on top of DefaultConfig.
//
// A presets table in the file replaces the built-in presets entirely, so a
// user can unbind f/h/l by listing only the keys they want.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.Margin != nil {
		cfg.Margin = *raw.Margin
	}
	if raw.Colors != nil {
		if raw.Colors.Backdrop != nil {
			cfg.Colors.Backdrop = *raw.Colors.Backdrop
		}
		if raw.Colors.Cell != nil {
			cfg.Colors.Cell = *raw.Colors.Cell
		}
		if raw.Colors.Selected != nil {
			cfg.Colors.Selected = *raw.Colors.Selected
		}
	}
	if raw.Presets != nil {
		cfg.Presets = make(map[string]Region, len(raw.Presets))
		for key, rr := range raw.Presets {
			if rr.Type == nil {
				return nil, &ValidationError{Path: "presets." + key, Err: fmt.Errorf("type is required")}
			}
			cfg.Presets[key] = Region{
				Type:          *rr.Type,
				XPercent:      derefInt(rr.XPercent),
				YPercent:      derefInt(rr.YPercent),
				WidthPercent:  derefInt(rr.WidthPercent),
				HeightPercent: derefInt(rr.HeightPercent),
			}
		}
	}

	return cfg, nil
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
