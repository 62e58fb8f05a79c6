package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// defaultYAML is written on first run when no shipped default config exists
// next to the binary.
const defaultYAML = `app:
  port: 38473
  data_dir: "."

storage:
  db_file: silicon_beach.db
  csv_paths:
    - data/la_vcs_20251111_083756_enriched.csv
    - data/builtinla_mcp_20251111_085045.csv

cache:
  ttl_seconds: 300

map:
  home_area: Culver City
  default_min_score: 50
`

// EnsureUserConfig makes sure a user config exists in dataDir, seeding it
// from defaultPath (or the baked-in default) on first run. Returns the path
// of the user config.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	src, err := os.Open(defaultPath)
	if err != nil {
		// no shipped default; fall back to the baked-in one
		if werr := os.WriteFile(userPath, []byte(defaultYAML), 0o644); werr != nil {
			return "", werr
		}
		return userPath, nil
	}
	defer src.Close()

	dst, err := os.Create(userPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return userPath, nil
}
