package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/domain"
)

// AddReferral appends one referral path. The tier is stored as given; range
// checking belongs to the caller. created_at comes from the table default.
func AddReferral(ctx context.Context, db *sql.DB, r domain.ReferralPath) error {
	_, err := db.ExecContext(ctx, `
INSERT INTO referral_paths
  (company, target_person, target_title, connector_name, connector_relationship, connection_tier, notes)
VALUES (?, ?, ?, ?, ?, ?, ?);`,
		r.Company, r.TargetPerson, r.TargetTitle, r.ConnectorName,
		r.ConnectorRelationship, r.ConnectionTier, r.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert referral: %w", err)
	}
	return nil
}

// GetReferrals returns all referral paths newest-first, optionally filtered
// by exact company match. company == "" means no filter. The rowid tiebreak
// keeps same-second inserts in insertion-reversed order.
func GetReferrals(ctx context.Context, db *sql.DB, company string) ([]domain.ReferralPath, error) {
	query := `
SELECT company, target_person, target_title, connector_name, connector_relationship, connection_tier, notes, created_at
FROM referral_paths`
	var args []any
	if company != "" {
		query += `
WHERE company = ?`
		args = append(args, company)
	}
	query += `
ORDER BY created_at DESC, rowid DESC;`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list referrals: %w", err)
	}
	defer rows.Close()

	var out []domain.ReferralPath
	for rows.Next() {
		var (
			r         domain.ReferralPath
			createdAt string
		)
		if err := rows.Scan(
			&r.Company, &r.TargetPerson, &r.TargetTitle, &r.ConnectorName,
			&r.ConnectorRelationship, &r.ConnectionTier, &r.Notes, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan referral: %w", err)
		}
		// CURRENT_TIMESTAMP writes UTC "YYYY-MM-DD HH:MM:SS".
		ts, err := time.ParseInLocation("2006-01-02 15:04:05", createdAt, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		r.CreatedAt = ts
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
