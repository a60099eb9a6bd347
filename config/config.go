// Package config holds the process-wide options for matching, storage, journaling
// and the presentation layers.
package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	defaults "github.com/mcuadros/go-defaults"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Matching struct {
	// ZoneSize is the side of a square zoning cell.
	ZoneSize int `toml:"zone_size" default:"100"`
	// MaxZones caps how many of the densest cells take part in zonal scoring.
	MaxZones int `toml:"max_zones" default:"10"`
	// ZoneReach scales ZoneSize into the center-to-center pairing radius.
	ZoneReach float64 `toml:"zone_reach" default:"1.5"`
	// MaxDistance is the largest Euclidean offset for a point pair to correspond.
	MaxDistance float64 `toml:"max_distance" default:"10"`
	// MaxAngle is the largest circular angle delta, in degrees, for a point pair.
	MaxAngle float64 `toml:"max_angle" default:"20"`
	// ConfidenceClamp rounds confidences above it up to 100.
	ConfidenceClamp float64 `toml:"confidence_clamp" default:"99.995"`
}

type Store struct {
	Backend string `toml:"backend" default:"file"`
	Path    string `toml:"path" default:"data/catalog.cbor"`
}

type Journal struct {
	Dir           string `toml:"dir" default:"data/journal"`
	MaxAgeHours   int    `toml:"max_age_hours" default:"720"`
	RotationHours int    `toml:"rotation_hours" default:"24"`
}

type Server struct {
	Listen string `toml:"listen" default:":9090"`
}

type Auth struct {
	Credentials string `toml:"credentials" default:"data/credentials.txt"`
	Required    bool   `toml:"required"`
}

type Plot struct {
	Margin int `toml:"margin" default:"10"`
	Mark   int `toml:"mark" default:"2"`
	// MaxSide caps the width and height of a rendered plot.
	MaxSide int `toml:"max_side" default:"4096"`
}

type Options struct {
	Matching Matching `toml:"matching"`
	Store    Store    `toml:"store"`
	Journal  Journal  `toml:"journal"`
	Server   Server   `toml:"server"`
	Auth     Auth     `toml:"auth"`
	Plot     Plot     `toml:"plot"`
}

// Config is the active configuration. It is populated by LoadDefaultConfig or LoadConfig.
var Config = Default()

// Default returns Options with every field set from its default tag.
func Default() *Options {
	o := new(Options)
	defaults.SetDefaults(o)
	return o
}

func LoadDefaultConfig() {
	Config = Default()
}

// LoadConfig resets Config to defaults and overlays the TOML file at path.
func LoadConfig(path string) error {
	o, err := Load(path)
	if err != nil {
		return err
	}
	Config = o
	return nil
}

// Load reads path on top of the defaults without touching Config.
func Load(path string) (*Options, error) {
	o := Default()
	if path == "" {
		return o, nil
	}
	if _, err := toml.DecodeFile(path, o); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return o, nil
}

func (o *Options) Validate() error {
	m := o.Matching
	switch {
	case m.ZoneSize <= 0:
		return errors.New("matching.zone_size must be positive")
	case m.MaxZones <= 0:
		return errors.New("matching.max_zones must be positive")
	case m.ZoneReach <= 0:
		return errors.New("matching.zone_reach must be positive")
	case m.MaxDistance <= 0:
		return errors.New("matching.max_distance must be positive")
	case m.MaxAngle < 0 || m.MaxAngle > 180:
		return errors.New("matching.max_angle must be within [0,180]")
	}
	if o.Plot.Margin < 0 || o.Plot.Mark < 0 || o.Plot.MaxSide <= 0 {
		return errors.New("plot margin and mark must be non-negative and max_side positive")
	}
	switch o.Store.Backend {
	case BackendMemory, BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown store.backend %q", o.Store.Backend)
	}
	if o.Store.Backend != BackendMemory && o.Store.Path == "" {
		return errors.New("store.path is required for persistent backends")
	}
	return nil
}
