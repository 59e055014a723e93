// Package config loads the YAML settings of the demo server.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/0x0FACED/go-dcel/pkg/geom"
	"github.com/0x0FACED/go-dcel/pkg/hull"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const maxSites = 5000

type Config struct {
	Tolerances geom.Tolerances `yaml:"tolerances"`
	Bounds     Bounds          `yaml:"bounds"`
	Server     Server          `yaml:"server"`
	Sites      Sites           `yaml:"sites"`
	LogLevel   string          `yaml:"log_level"`
}

// Bounds is either a square of the given half width around the origin or
// an explicit convex polygon.
type Bounds struct {
	HalfWidth float64     `yaml:"half_width"`
	Polygon   [][]float64 `yaml:"polygon"`
}

type Server struct {
	Addr string `yaml:"addr"`
}

// Sites controls the generated input of the demo page.
type Sites struct {
	Count  int   `yaml:"count"`
	Seed   int64 `yaml:"seed"`
	Random bool  `yaml:"random"`
}

func Default() *Config {
	return &Config{
		Tolerances: geom.DefaultTolerances(),
		Bounds:     Bounds{HalfWidth: 0.8},
		Server:     Server{Addr: ":8080"},
		Sites:      Sites{Count: 12, Seed: 1},
		LogLevel:   "info",
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config: read")
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config: %s", path)
	}
	return cfg, nil
}

// Parse decodes data over the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "config: decode")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	err = multierr.Append(err, c.Tolerances.Validate())
	if _, e := c.Bounds.Points(); e != nil {
		err = multierr.Append(err, e)
	}
	if c.Server.Addr == "" {
		err = multierr.Append(err, errors.New("config: server.addr is empty"))
	}
	if c.Sites.Count < 0 || c.Sites.Count > maxSites {
		err = multierr.Append(err, errors.Errorf("config: sites.count must be in [0, %d], got %d", maxSites, c.Sites.Count))
	}
	if _, e := c.Level(); e != nil {
		err = multierr.Append(err, e)
	}
	return err
}

func (c *Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel, errors.Wrap(err, "config: log_level")
	}
	return lvl, nil
}

// Points returns the bounding polygon counter-clockwise.
func (b Bounds) Points() ([]r2.Point, error) {
	if len(b.Polygon) == 0 {
		if !(b.HalfWidth > 0) {
			return nil, errors.Errorf("config: bounds.half_width must be positive, got %v", b.HalfWidth)
		}
		w := b.HalfWidth
		return []r2.Point{{X: -w, Y: -w}, {X: w, Y: -w}, {X: w, Y: w}, {X: -w, Y: w}}, nil
	}

	pts := make([]r2.Point, len(b.Polygon))
	for i, xy := range b.Polygon {
		if len(xy) != 2 {
			return nil, errors.Errorf("config: bounds.polygon[%d] needs 2 coordinates, got %d", i, len(xy))
		}
		pts[i] = r2.Point{X: xy[0], Y: xy[1]}
	}
	if !hull.IsConvex(pts) {
		return nil, errors.New("config: bounds.polygon is not strictly convex")
	}
	if geom.SignedArea(pts) < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	return pts, nil
}
