package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/cache"
	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/domain"
	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/events"
	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/store"
)

type ReferralsHandler struct {
	DB       *sql.DB
	Hub      *events.Hub
	Listings *cache.Listings
	Log      *zap.Logger
	Metrics  *Metrics
	Limiter  *rate.Limiter
}

type createReferralReq struct {
	Company               string `json:"company"`
	TargetPerson          string `json:"targetPerson"`
	TargetTitle           string `json:"targetTitle"`
	ConnectorName         string `json:"connectorName"`
	ConnectorRelationship string `json:"connectorRelationship"`
	ConnectionTier        int    `json:"connectionTier"`
	Notes                 string `json:"notes"`
}

// List serves referral paths newest-first, optionally ?company= filtered.
func (h ReferralsHandler) List(w http.ResponseWriter, r *http.Request) {
	refs, err := store.GetReferrals(r.Context(), h.DB, r.URL.Query().Get("company"))
	if err != nil {
		h.Log.Warn("list referrals failed", zap.Error(err))
		writeJSON(w, []domain.ReferralPath{})
		return
	}
	if refs == nil {
		refs = []domain.ReferralPath{}
	}
	writeJSON(w, refs)
}

// Create records one referral path. Target person and connector name are
// required; nothing reaches storage without them.
func (h ReferralsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Limiter != nil && !h.Limiter.Allow() {
		WriteError(w, r, http.StatusTooManyRequests, "rate_limited", "too many referral submissions")
		return
	}

	var req createReferralReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(req.TargetPerson) == "" || strings.TrimSpace(req.ConnectorName) == "" {
		WriteError(w, r, http.StatusBadRequest, "validation_gap", "target person and connector name are required")
		return
	}

	ref := domain.ReferralPath{
		Company:               req.Company,
		TargetPerson:          req.TargetPerson,
		TargetTitle:           req.TargetTitle,
		ConnectorName:         req.ConnectorName,
		ConnectorRelationship: req.ConnectorRelationship,
		ConnectionTier:        req.ConnectionTier,
		Notes:                 req.Notes,
	}
	if err := store.AddReferral(r.Context(), h.DB, ref); err != nil {
		h.Log.Error("add referral failed", zap.Error(err))
		WriteError(w, r, http.StatusInternalServerError, "storage_error", "could not save referral")
		return
	}

	if h.Metrics != nil {
		h.Metrics.ReferralsAdded.Inc()
	}
	if h.Listings != nil {
		h.Listings.Invalidate()
	}
	if h.Hub != nil {
		reqID := RequestIDFrom(r.Context())
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeReferralCreated, 1, map[string]any{
			"company": req.Company,
		}))
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, map[string]any{"ok": true})
}
