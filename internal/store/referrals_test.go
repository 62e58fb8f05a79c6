package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/domain"
)

func referralDB(t *testing.T) *DB {
	t.Helper()
	db := openTestDB(t)
	require.NoError(t, EnsureSchema(context.Background(), db.Pool, nil, zap.NewNop()))
	return db
}

func TestAddAndGetReferralByCompany(t *testing.T) {
	db := referralDB(t)
	ctx := context.Background()

	in := domain.ReferralPath{
		Company:               "Acme",
		TargetPerson:          "Jane Doe",
		TargetTitle:           "Eng Mgr",
		ConnectorName:         "Bob",
		ConnectorRelationship: "College friend",
		ConnectionTier:        1,
		Notes:                 "met at conf",
	}
	require.NoError(t, AddReferral(ctx, db.Pool, in))
	require.NoError(t, AddReferral(ctx, db.Pool, domain.ReferralPath{
		Company: "Globex", TargetPerson: "Max", ConnectorName: "Eve", ConnectionTier: 2,
	}))

	got, err := GetReferrals(ctx, db.Pool, "Acme")
	require.NoError(t, err)
	require.Len(t, got, 1)

	r := got[0]
	require.Equal(t, in.Company, r.Company)
	require.Equal(t, in.TargetPerson, r.TargetPerson)
	require.Equal(t, in.TargetTitle, r.TargetTitle)
	require.Equal(t, in.ConnectorName, r.ConnectorName)
	require.Equal(t, in.ConnectorRelationship, r.ConnectorRelationship)
	require.Equal(t, in.ConnectionTier, r.ConnectionTier)
	require.Equal(t, in.Notes, r.Notes)
	require.False(t, r.CreatedAt.IsZero(), "created_at must be server-assigned")
}

func TestGetReferralsNewestFirst(t *testing.T) {
	db := referralDB(t)
	ctx := context.Background()

	require.NoError(t, AddReferral(ctx, db.Pool, domain.ReferralPath{
		Company: "Acme", TargetPerson: "First", ConnectorName: "A",
	}))
	require.NoError(t, AddReferral(ctx, db.Pool, domain.ReferralPath{
		Company: "Globex", TargetPerson: "Second", ConnectorName: "B",
	}))

	got, err := GetReferrals(ctx, db.Pool, "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Second", got[0].TargetPerson)
	require.Equal(t, "First", got[1].TargetPerson)
	require.False(t, got[0].CreatedAt.Before(got[1].CreatedAt))
}

func TestGetReferralsMangledCreatedAt(t *testing.T) {
	db := referralDB(t)
	ctx := context.Background()

	_, err := db.Pool.ExecContext(ctx, `
INSERT INTO referral_paths
  (company, target_person, target_title, connector_name, connector_relationship, connection_tier, notes, created_at)
VALUES ('Acme', 'Jane', '', 'Bob', '', 1, '', 'not-a-timestamp');`)
	require.NoError(t, err)

	_, err = GetReferrals(ctx, db.Pool, "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not-a-timestamp")
}

func TestGetReferralsEmpty(t *testing.T) {
	db := referralDB(t)

	got, err := GetReferrals(context.Background(), db.Pool, "Nobody")
	require.NoError(t, err)
	require.Empty(t, got)
}
