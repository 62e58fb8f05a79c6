package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port int `yaml:"port" json:"port" envconfig:"SB_PORT"`
		// Informational for the UI. The engine must know the data dir before
		// it can read this file, so main resolves SB_DATA_DIR itself and
		// writes the result back here; the YAML value has no effect.
		DataDir string `yaml:"data_dir" json:"data_dir" envconfig:"SB_DATA_DIR"`
	} `yaml:"app" json:"app"`

	Storage struct {
		DBFile string `yaml:"db_file" json:"db_file" envconfig:"SB_DB_FILE"`
		// Candidate CSVs for first-run import, tried in order.
		CSVPaths []string `yaml:"csv_paths" json:"csv_paths"`
	} `yaml:"storage" json:"storage"`

	Cache struct {
		TTLSeconds int `yaml:"ttl_seconds" json:"ttl_seconds" envconfig:"SB_CACHE_TTL_SECONDS"`
	} `yaml:"cache" json:"cache"`

	Map struct {
		HomeArea        string `yaml:"home_area" json:"home_area"`
		DefaultMinScore int    `yaml:"default_min_score" json:"default_min_score"`
	} `yaml:"map" json:"map"`
}

// Load reads the YAML file, then lets SB_* environment variables override
// individual fields.
func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	err = envconfig.Process("", &cfg)
	return cfg, err
}
