package store

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// listingColumns is the fixed logical schema of jobs_cleaned, in projection
// order. Everything is nullable text except the two integer columns.
var listingColumns = []string{
	"type",
	"company",
	"title",
	"area",
	"location",
	"address",
	"stage",
	"focus",
	"transit_duration",
	"transit_routes",
	"transit_changes",
	"commute_rating",
	"commute_score",
	"google_maps_link",
	"career_url",
	"job_url",
	"linkedin_search",
	"contact_name",
	"contact_email",
	"closest_metro",
}

var integerColumns = map[string]bool{
	"transit_changes": true,
	"commute_score":   true,
}

// EnsureSchema makes sure jobs_cleaned and referral_paths exist. When
// jobs_cleaned is missing it is materialized from the first CSV candidate
// that parses, with column names lower-cased; if none does, an empty table
// with the fixed schema is created instead. CSV failures are swallowed and
// the next candidate is tried. Safe to call on every start.
func EnsureSchema(ctx context.Context, db *sql.DB, csvPaths []string, log *zap.Logger) error {
	if !tableUsable(ctx, db, "jobs_cleaned") {
		imported := false
		for _, path := range csvPaths {
			if err := importCSV(ctx, db, path); err != nil {
				log.Debug("csv candidate skipped", zap.String("path", path), zap.Error(err))
				continue
			}
			log.Info("jobs_cleaned created from csv", zap.String("path", path))
			imported = true
			break
		}
		if !imported {
			if err := createEmptyListings(ctx, db); err != nil {
				return fmt.Errorf("create empty jobs_cleaned: %w", err)
			}
			log.Info("jobs_cleaned created empty")
		}
	}

	// referral_paths is ensured independently of how jobs_cleaned got there.
	if !tableUsable(ctx, db, "referral_paths") {
		if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS referral_paths (
  company TEXT,
  target_person TEXT,
  target_title TEXT,
  connector_name TEXT,
  connector_relationship TEXT,
  connection_tier INTEGER,
  notes TEXT,
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`); err != nil {
			return fmt.Errorf("create referral_paths: %w", err)
		}
	}
	return nil
}

// tableUsable probes the table with a trivial count. Any failure (absent,
// malformed, inaccessible) reads as "schema missing".
func tableUsable(ctx context.Context, db *sql.DB, table string) bool {
	var n int
	err := db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %q;`, table)).Scan(&n)
	return err == nil
}

func importCSV(ctx context.Context, db *sql.DB, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	cols := make([]string, 0, len(header))
	for _, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if name == "" {
			return fmt.Errorf("empty column name in %s", path)
		}
		cols = append(cols, name)
	}
	if len(cols) == 0 {
		return fmt.Errorf("no columns in %s", path)
	}

	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("read rows: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	defs := make([]string, 0, len(cols))
	for _, c := range cols {
		typ := "TEXT"
		if integerColumns[c] {
			typ = "INTEGER"
		}
		defs = append(defs, fmt.Sprintf("%q %s", c, typ))
	}
	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS jobs_cleaned (%s);`, strings.Join(defs, ", "))); err != nil {
		return err
	}

	quoted := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = fmt.Sprintf("%q", c)
		marks[i] = "?"
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO jobs_cleaned (%s) VALUES (%s);`,
		strings.Join(quoted, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		args := make([]any, len(cols))
		for i := range cols {
			if i < len(rec) && strings.TrimSpace(rec[i]) != "" {
				args[i] = rec[i]
			} else {
				args[i] = nil
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func createEmptyListings(ctx context.Context, db *sql.DB) error {
	defs := make([]string, 0, len(listingColumns))
	for _, c := range listingColumns {
		typ := "TEXT"
		if integerColumns[c] {
			typ = "INTEGER"
		}
		defs = append(defs, fmt.Sprintf("%q %s", c, typ))
	}
	_, err := db.ExecContext(ctx,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS jobs_cleaned (%s);`, strings.Join(defs, ", ")))
	return err
}
