// Package config holds the settings of the goboy frontend, read
// from an optional YAML file and overridden by command line flags.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/thelolagemann/dmgcore/pkg/utils"
	"gopkg.in/yaml.v3"
)

// Config is the complete frontend configuration.
type Config struct {
	ROM    string  `yaml:"rom"`
	Boot   string  `yaml:"boot"`
	Driver string  `yaml:"driver"`
	Speed  float64 `yaml:"speed"`
	Debug  bool    `yaml:"debug"`
	// Serial is the file serial output is written to, "-" for stdout.
	Serial string `yaml:"serial"`

	Headless Headless `yaml:"headless"`
	Web      Web      `yaml:"web"`
}

// Headless configures the headless driver.
type Headless struct {
	Frames     int    `yaml:"frames"`
	Screenshot string `yaml:"screenshot"`
	Scale      int    `yaml:"scale"`
}

// Web configures the websocket driver.
type Web struct {
	Address string `yaml:"address"`
	// Compression is the brotli quality, 0 disables compression.
	Compression int `yaml:"compression"`
	CacheSize   int `yaml:"cache_size"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Driver: "headless",
		Speed:  1,
		Headless: Headless{
			Frames: 600,
			Scale:  1,
		},
		Web: Web{
			Address:     ":8090",
			Compression: 5,
			CacheSize:   64,
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file
// is not an error, the defaults are returned instead.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	} else if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	c.Speed = utils.Clamp(0, c.Speed, 16)

	return c, nil
}

// Drivers lists the display drivers Validate accepts.
var Drivers = []string{"headless", "web"}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.ROM == "" {
		result = multierror.Append(result, errors.New("no rom given"))
	}

	known := false
	for _, d := range Drivers {
		known = known || d == c.Driver
	}
	if !known {
		result = multierror.Append(result, fmt.Errorf("unknown driver %q", c.Driver))
	}

	if c.Speed < 0 {
		result = multierror.Append(result, fmt.Errorf("speed %v is negative", c.Speed))
	}
	if c.Headless.Frames <= 0 {
		result = multierror.Append(result, fmt.Errorf("headless frames must be positive, got %d", c.Headless.Frames))
	}
	if c.Headless.Scale < 1 || c.Headless.Scale > 8 {
		result = multierror.Append(result, fmt.Errorf("headless scale %d out of range [1, 8]", c.Headless.Scale))
	}
	if c.Web.Compression < 0 || c.Web.Compression > 11 {
		result = multierror.Append(result, fmt.Errorf("web compression %d out of range [0, 11]", c.Web.Compression))
	}
	if c.Web.CacheSize < 1 {
		result = multierror.Append(result, fmt.Errorf("web cache size must be positive, got %d", c.Web.CacheSize))
	}

	return result.ErrorOrNil()
}
