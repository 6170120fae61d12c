package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config carries every knob of the pipeline. All values have working
// defaults so the binary runs with an empty environment.
type Config struct {
	DataDir          string   `env:"DATA_DIR" envDefault:"data"`
	ReferendumFile   string   `env:"REFERENDUM_FILE" envDefault:"referendum.csv"`
	RegionsFile      string   `env:"REGIONS_FILE" envDefault:"regions.csv"`
	DepartmentsFile  string   `env:"DEPARTMENTS_FILE" envDefault:"departments.csv"`
	GeometriesFile   string   `env:"REGIONS_GEOJSON_FILE" envDefault:"regions.geojson"`
	MapOutputPath    string   `env:"MAP_OUTPUT_PATH" envDefault:"referendum_map.svg"`
	ExcludedPrefixes []string `env:"EXCLUDED_DEPARTMENT_PREFIXES" envDefault:"97,98,99"`
	MapWidth         int      `env:"MAP_WIDTH" envDefault:"1000"`
	MapHeight        int      `env:"MAP_HEIGHT" envDefault:"800"`
}

func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, nil
}

func (c *Config) ReferendumPath() string {
	return filepath.Join(c.DataDir, c.ReferendumFile)
}

func (c *Config) RegionsPath() string {
	return filepath.Join(c.DataDir, c.RegionsFile)
}

func (c *Config) DepartmentsPath() string {
	return filepath.Join(c.DataDir, c.DepartmentsFile)
}

func (c *Config) GeometriesPath() string {
	return filepath.Join(c.DataDir, c.GeometriesFile)
}
