package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/benoitkugler/svgdna/mandala"
	"github.com/pelletier/go-toml/v2"
)

// Config holds the generation parameters. It is read from a TOML file,
// and each command line flag overrides the matching field.
type Config struct {
	Seed   int64   `toml:"seed"`
	Length int     `toml:"length"` // of the DNA sequence
	Size   float64 `toml:"size"`   // of the square canvas
	Colour bool    `toml:"colour"` // fill pass of the circle mandala

	IFS     IFSConfig     `toml:"ifs"`
	Palette PaletteConfig `toml:"palette"`
}

type IFSConfig struct {
	Rule     string `toml:"rule"` // one of ifs.Rules
	Depth    int    `toml:"depth"`
	Sides    int    `toml:"sides"` // of the source polygon
	Polygram int    `toml:"polygram"`
	MaxLines int    `toml:"max_lines"`
}

type PaletteConfig struct {
	Rows    int     `toml:"rows"`
	Columns int     `toml:"columns"`
	Degree  float64 `toml:"degree"` // between the triad hues, in degrees
}

// DefaultConfig returns the parameters used when no file is given.
func DefaultConfig() Config {
	return Config{
		Seed:   mandala.DefaultSeed,
		Length: mandala.DefaultLength,
		Size:   mandala.CanvasSize,
		Colour: true,
		IFS: IFSConfig{
			Rule:     "koch",
			Depth:    3,
			Sides:    3,
			Polygram: 1,
			MaxLines: 1 << 20,
		},
		Palette: PaletteConfig{Rows: 8, Columns: 8, Degree: 120},
	}
}

// LoadConfig reads the file at `path` on top of the defaults.
// Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (cfg Config) validate() error {
	if cfg.Size <= 0 {
		return fmt.Errorf("invalid canvas size %g", cfg.Size)
	}
	if cfg.IFS.Depth < 0 {
		return fmt.Errorf("invalid IFS depth %d", cfg.IFS.Depth)
	}
	if cfg.IFS.Sides <= 0 {
		return fmt.Errorf("invalid number of sides %d", cfg.IFS.Sides)
	}
	if cfg.Palette.Rows <= 0 || cfg.Palette.Columns <= 0 {
		return fmt.Errorf("invalid palette grid %dx%d", cfg.Palette.Rows, cfg.Palette.Columns)
	}
	return nil
}
