package domain

import "time"

// ReferralPath records a warm-intro chain to a target contact at a company.
// Rows are append-only; CreatedAt is assigned by the database on insert.
type ReferralPath struct {
	Company               string    `json:"company"`
	TargetPerson          string    `json:"targetPerson"`
	TargetTitle           string    `json:"targetTitle"`
	ConnectorName         string    `json:"connectorName"`
	ConnectorRelationship string    `json:"connectorRelationship"`
	ConnectionTier        int       `json:"connectionTier"` // 1 = strongest
	Notes                 string    `json:"notes"`
	CreatedAt             time.Time `json:"createdAt"`
}
