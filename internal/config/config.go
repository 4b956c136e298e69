package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment overrides: SIM_HTTP__ADDR sets http.addr.
const EnvPrefix = "SIM_"

type Config struct {
	Data     DataConfig     `json:"data"`
	Database DatabaseConfig `json:"database"`
	HTTP     HTTPConfig     `json:"http"`
	Fleet    FleetConfig    `json:"fleet"`
}

// DataConfig selects where ingested records come from: "csv" reads the two
// files directly, "db" reads a database seeded by dbtool.
type DataConfig struct {
	Source    string `json:"source"`
	Distances string `json:"distances"`
	Parcels   string `json:"parcels"`
}

type DatabaseConfig struct {
	Driver string `json:"driver"`
	DSN    string `json:"dsn"`
}

type HTTPConfig struct {
	Addr string `json:"addr"`
}

// Load reads a YAML file (optional when path is empty) and applies SIM_
// environment overrides, defaults and validation.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
		default:
			return nil, fmt.Errorf("load config: unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config: read %q: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load config: env overrides: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("load config: unmarshal: %w", err)
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) SetDefaults() {
	if c.Data.Source == "" {
		c.Data.Source = "csv"
	}
	if c.Data.Distances == "" {
		c.Data.Distances = "data/distances.csv"
	}
	if c.Data.Parcels == "" {
		c.Data.Parcels = "data/packages.csv"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.DSN == "" {
		c.Database.DSN = "data/sim.db"
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	c.Fleet.SetDefaults()
}

func (c Config) Validate() error {
	if c.Data.Source != "csv" && c.Data.Source != "db" {
		return fmt.Errorf("data.source must be csv or db, got %q", c.Data.Source)
	}
	if strings.TrimSpace(c.Database.DSN) == "" && c.Data.Source == "db" {
		return errors.New("database.dsn is required when data.source is db")
	}
	return c.Fleet.Validate()
}
