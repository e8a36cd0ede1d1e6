package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(v string) (color.NRGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(v), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %q", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}

	var out color.NRGBA
	var err error
	if out.R, err = parse(0); err != nil {
		return color.NRGBA{}, fmt.Errorf("parse red component: %w", err)
	}
	if out.G, err = parse(2); err != nil {
		return color.NRGBA{}, fmt.Errorf("parse green component: %w", err)
	}
	if out.B, err = parse(4); err != nil {
		return color.NRGBA{}, fmt.Errorf("parse blue component: %w", err)
	}
	out.A = 255
	if len(s) == 8 {
		if out.A, err = parse(6); err != nil {
			return color.NRGBA{}, fmt.Errorf("parse alpha component: %w", err)
		}
	}
	return out, nil
}

// YAMLColor decodes a hex colour scalar.
type YAMLColor struct {
	color.NRGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.NRGBA = parsed
	return nil
}
