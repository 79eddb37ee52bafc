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

// CameraSpec configures the camera and the frame clock.
type CameraSpec struct {
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	// Speed is the travel speed in pixels per second.
	Speed int `yaml:"speed"`
	// TPS is the number of game ticks per second.
	TPS int `yaml:"tps"`
}

const CameraSpecFile = "camera.yaml"

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec](CameraSpecFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// MapSpec describes a map: its size, where the hero spawns, its separators
// and the script receiving camera events.
type MapSpec struct {
	Name       string          `yaml:"name"`
	Width      int             `yaml:"width"`
	Height     int             `yaml:"height"`
	Hero       string          `yaml:"hero"`
	Spawn      PointSpec       `yaml:"spawn"`
	Separators []SeparatorSpec `yaml:"separators"`
	Script     string          `yaml:"script"`
	Background *YAMLColor      `yaml:"background"`
}

type PointSpec struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type SeparatorSpec struct {
	Name   string     `yaml:"name"`
	X      int        `yaml:"x"`
	Y      int        `yaml:"y"`
	Width  int        `yaml:"width"`
	Height int        `yaml:"height"`
	Color  *YAMLColor `yaml:"color"`
}

// MapSpecPath returns the prefab path of the named map.
func MapSpecPath(name string) string {
	name = strings.TrimSuffix(name, ".yaml")
	name = strings.TrimPrefix(name, "maps/")
	return "maps/" + name + ".yaml"
}

func LoadMapSpec(name string) (*MapSpec, error) {
	spec, err := LoadSpec[MapSpec](MapSpecPath(name))
	if err != nil {
		return nil, err
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("prefabs: map %q: invalid size %dx%d", name, spec.Width, spec.Height)
	}
	if spec.Hero == "" {
		spec.Hero = "hero.yaml"
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
