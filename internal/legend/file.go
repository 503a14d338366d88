package legend

import (
	"fmt"
	"image/color"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// paletteFile is the YAML shape of a palette override file.
type paletteFile struct {
	Entries []struct {
		Code   int    `yaml:"code"`
		Label  string `yaml:"label"`
		Color  string `yaml:"color"`
		Hidden bool   `yaml:"hidden"`
	} `yaml:"entries"`
}

// LoadFile reads a palette override from a YAML file. Colors are given as
// "#RRGGBB" hex strings.
func LoadFile(path string) (Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "legend: read %s", path)
	}

	var pf paletteFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, eris.Wrapf(err, "legend: parse %s", path)
	}
	if len(pf.Entries) == 0 {
		return nil, eris.Errorf("legend: %s has no entries", path)
	}

	p := make(Palette, 0, len(pf.Entries))
	for _, e := range pf.Entries {
		if e.Code < 0 || e.Code > 255 {
			return nil, eris.Errorf("legend: code %d out of range", e.Code)
		}
		c, err := parseHexColor(e.Color)
		if err != nil {
			return nil, err
		}
		p = append(p, Entry{Code: uint8(e.Code), Label: e.Label, Color: c, Hidden: e.Hidden})
	}
	return p, nil
}

func parseHexColor(s string) (color.RGBA, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, eris.Errorf("legend: invalid color %q, want #RRGGBB", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
