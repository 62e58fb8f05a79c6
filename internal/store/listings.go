package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/domain"
)

// tableColumns returns the physical column names of a table, lower-cased.
func tableColumns(ctx context.Context, db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT name FROM pragma_table_info('%s');`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols[strings.ToLower(name)] = true
	}
	return cols, rows.Err()
}

// LoadListings reads jobs_cleaned through a defensive projection: every
// logical column is selected when physically present and projected as NULL
// when absent, so callers always see the full 20-field shape no matter what
// the table actually contains. A stored NULL type normalizes to 'JOB'.
// Order is type descending, then commute score descending with NULL as 0.
func LoadListings(ctx context.Context, db *sql.DB) ([]domain.Listing, error) {
	present, err := tableColumns(ctx, db, "jobs_cleaned")
	if err != nil {
		return nil, fmt.Errorf("introspect jobs_cleaned: %w", err)
	}

	selects := make([]string, 0, len(listingColumns))
	typeExpr, scoreExpr := "NULL", "NULL"
	for _, col := range listingColumns {
		switch {
		case col == "type" && present[col]:
			typeExpr = `COALESCE(type, 'JOB')`
			selects = append(selects, typeExpr+` AS type`)
		case col == "commute_score" && present[col]:
			scoreExpr = `COALESCE(commute_score, 0)`
			selects = append(selects, `commute_score`)
		case present[col]:
			selects = append(selects, fmt.Sprintf("%q", col))
		default:
			selects = append(selects, fmt.Sprintf("NULL AS %q", col))
		}
	}

	query := fmt.Sprintf(`
SELECT %s
FROM jobs_cleaned
ORDER BY %s DESC, %s DESC;`,
		strings.Join(selects, ", "), typeExpr, scoreExpr)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load listings: %w", err)
	}
	defer rows.Close()

	var out []domain.Listing
	for rows.Next() {
		var l domain.Listing
		// NULL scans into a nil pointer; present values are allocated.
		if err := rows.Scan(
			&l.Type,
			&l.Company,
			&l.Title,
			&l.Area,
			&l.Location,
			&l.Address,
			&l.Stage,
			&l.Focus,
			&l.TransitDuration,
			&l.TransitRoutes,
			&l.TransitChanges,
			&l.CommuteRating,
			&l.CommuteScore,
			&l.GoogleMapsLink,
			&l.CareerURL,
			&l.JobURL,
			&l.LinkedInSearch,
			&l.ContactName,
			&l.ContactEmail,
			&l.ClosestMetro,
		); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
