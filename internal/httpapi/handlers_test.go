package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/cache"
	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/config"
	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/domain"
	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/events"
	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/mapview"
	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/store"
)

func testMux(t *testing.T) (*http.ServeMux, *store.DB) {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.EnsureSchema(context.Background(), db.Pool, nil, zap.NewNop()))

	listings := cache.NewListings(time.Minute, func(ctx context.Context) ([]domain.Listing, error) {
		return store.LoadListings(ctx, db.Pool)
	})

	mux := NewMux(Deps{
		DB:       db.Pool,
		Hub:      events.NewHub(),
		Log:      zap.NewNop(),
		Listings: listings,
		Metrics:  NewMetrics(),
	})
	return mux, db
}

func seedListing(t *testing.T, db *store.DB, typ, company, area string, score int) {
	t.Helper()
	_, err := db.Pool.Exec(
		`INSERT INTO jobs_cleaned (type, company, area, commute_score) VALUES (?, ?, ?, ?);`,
		typ, company, area, score)
	require.NoError(t, err)
}

func do(mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}

func TestListingsEndpointFilters(t *testing.T) {
	mux, db := testMux(t)
	seedListing(t, db, "JOB", "Acme", "Santa Monica", 90)
	seedListing(t, db, "JOB", "Globex", "El Segundo", 40)
	seedListing(t, db, "VC", "Beach Ventures", "Santa Monica", 80)

	w := do(mux, http.MethodGet, "/listings", "")
	require.Equal(t, 200, w.Code)
	var all []domain.Listing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 3)

	w = do(mux, http.MethodGet, "/listings?min_score=75&area=Santa+Monica", "")
	require.Equal(t, 200, w.Code)
	var filtered []domain.Listing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &filtered))
	require.Len(t, filtered, 2)
	for _, l := range filtered {
		assert.Equal(t, "Santa Monica", *l.Area)
	}
}

func TestMapEndpointTypeToggle(t *testing.T) {
	mux, db := testMux(t)
	seedListing(t, db, "JOB", "Acme", "Santa Monica", 90)
	seedListing(t, db, "VC", "Beach Ventures", "Playa Vista", 110)

	w := do(mux, http.MethodGet, "/map?show_jobs=false", "")
	require.Equal(t, 200, w.Code)

	var doc mapview.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	require.Len(t, doc.Markers, 2, "home marker plus the one VC")
	assert.Equal(t, "home", doc.Markers[0].Icon)
	assert.Equal(t, "briefcase", doc.Markers[1].Icon)
	assert.Equal(t, "orange", doc.Markers[1].Color)
}

func TestSummaryEndpoint(t *testing.T) {
	mux, db := testMux(t)
	seedListing(t, db, "JOB", "Acme", "Santa Monica", 100)
	seedListing(t, db, "JOB", "Globex", "El Segundo", 80)
	seedListing(t, db, "VC", "Beach Ventures", "Playa Vista", 40)

	w := do(mux, http.MethodGet, "/summary", "")
	require.Equal(t, 200, w.Code)

	var s summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	assert.Equal(t, 1, s.Excellent)
	assert.Equal(t, 1, s.Good)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Jobs)
	assert.Equal(t, 1, s.VCs)
}

func TestReferralCreateValidationGap(t *testing.T) {
	mux, db := testMux(t)

	w := do(mux, http.MethodPost, "/referrals", `{"company":"Acme","targetPerson":"","connectorName":"Bob"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var e APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	assert.Equal(t, "validation_gap", e.Error.Code)

	// nothing reached storage
	refs, err := store.GetReferrals(context.Background(), db.Pool, "")
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestReferralRoundTrip(t *testing.T) {
	mux, _ := testMux(t)

	w := do(mux, http.MethodPost, "/referrals",
		`{"company":"Acme","targetPerson":"Jane Doe","targetTitle":"Eng Mgr","connectorName":"Bob","connectorRelationship":"College friend","connectionTier":1,"notes":"met at conf"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(mux, http.MethodGet, "/referrals?company=Acme", "")
	require.Equal(t, 200, w.Code)

	var refs []domain.ReferralPath
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &refs))
	require.Len(t, refs, 1)
	assert.Equal(t, "Jane Doe", refs[0].TargetPerson)
	assert.Equal(t, 1, refs[0].ConnectionTier)
	assert.False(t, refs[0].CreatedAt.IsZero())
}

func TestRefreshEndpointInvalidatesCache(t *testing.T) {
	mux, db := testMux(t)

	w := do(mux, http.MethodGet, "/listings", "")
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())

	// the row landed after the first load; a refresh makes it visible
	seedListing(t, db, "JOB", "Acme", "Santa Monica", 90)
	w = do(mux, http.MethodPost, "/refresh", "")
	require.Equal(t, 200, w.Code)

	w = do(mux, http.MethodGet, "/listings", "")
	var all []domain.Listing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 1)
}

func TestEventsStreamsThroughMiddlewareChain(t *testing.T) {
	mux, _ := testMux(t)
	h := Chain(mux, RequestID, Recover(zap.NewNop()), AccessLog(zap.NewNop()), Cors)

	// Cancelled up front: the handler emits the opening ping, then returns.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `"type":"ping"`)
	assert.NotContains(t, w.Body.String(), "stream_unsupported")
}

func TestConfigGetReportsResolvedDataDir(t *testing.T) {
	var cfg config.Config
	cfg.App.DataDir = "/tmp/engine-data"
	var cfgVal atomic.Value
	cfgVal.Store(cfg)

	h := ConfigHandler{CfgVal: &cfgVal}
	w := httptest.NewRecorder()
	h.Get(w, httptest.NewRequest(http.MethodGet, "/config", nil))

	var out config.Config
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "/tmp/engine-data", out.App.DataDir)
}

func TestMethodNotAllowed(t *testing.T) {
	mux, _ := testMux(t)

	w := do(mux, http.MethodDelete, "/referrals", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
