package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a cleaned copy plus anything the UI should
// surface about it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			if seen[x] {
				continue
			}
			seen[x] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Storage.CSVPaths = trimList(out.Storage.CSVPaths)
	out.Map.HomeArea = strings.TrimSpace(out.Map.HomeArea)

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if strings.TrimSpace(out.Storage.DBFile) == "" {
		res.addErr("storage.db_file is required")
	}
	if out.Cache.TTLSeconds <= 0 {
		res.addErr("cache.ttl_seconds must be > 0")
	} else if out.Cache.TTLSeconds < 5 {
		res.addWarn("cache.ttl_seconds is very low (%d); every interaction will hit storage.", out.Cache.TTLSeconds)
	}
	if out.Map.DefaultMinScore < 0 || out.Map.DefaultMinScore > 100 {
		res.addErr("map.default_min_score must be 0..100")
	}
	if len(out.Storage.CSVPaths) == 0 {
		res.addWarn("storage.csv_paths is empty; a fresh database starts with no listings.")
	}

	return out, res
}
