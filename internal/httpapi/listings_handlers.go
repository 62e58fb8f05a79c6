package httpapi

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/cache"
	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/domain"
	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/events"
)

type ListingsHandler struct {
	Listings *cache.Listings
	Hub      *events.Hub
	Log      *zap.Logger
	Metrics  *Metrics
}

// List serves the normalized listings, optionally narrowed by ?area=
// (repeatable) and ?min_score=. A storage failure answers an empty list,
// never a 500; the dashboard stays up.
func (h ListingsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.Metrics != nil {
		h.Metrics.ListingsRequests.Inc()
	}

	listings, err := h.Listings.Get(r.Context())
	if err != nil {
		h.Log.Warn("load listings failed", zap.Error(err))
		writeJSON(w, []domain.Listing{})
		return
	}

	q := r.URL.Query()
	minScore, _ := strconv.Atoi(q.Get("min_score"))
	out := FilterListings(listings, q["area"], minScore)
	if out == nil {
		out = []domain.Listing{}
	}
	writeJSON(w, out)
}

// FilterListings applies the presentation-level filters: area membership
// (empty set means all areas) and minimum commute score, missing scores
// reading as 0.
func FilterListings(listings []domain.Listing, areas []string, minScore int) []domain.Listing {
	areaSet := make(map[string]bool, len(areas))
	for _, a := range areas {
		if a != "" {
			areaSet[a] = true
		}
	}

	var out []domain.Listing
	for _, l := range listings {
		if len(areaSet) > 0 {
			if l.Area == nil || !areaSet[*l.Area] {
				continue
			}
		}
		if l.Score() < int64(minScore) {
			continue
		}
		out = append(out, l)
	}
	return out
}

type summary struct {
	Excellent int `json:"excellent"` // score >= 100
	Good      int `json:"good"`      // 75..99
	Total     int `json:"total"`
	Jobs      int `json:"jobs"`
	VCs       int `json:"vcs"`
}

// Summary serves the dashboard counters over the full (unfiltered) set.
func (h ListingsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	listings, err := h.Listings.Get(r.Context())
	if err != nil {
		h.Log.Warn("load listings failed", zap.Error(err))
		writeJSON(w, summary{})
		return
	}

	var s summary
	s.Total = len(listings)
	for _, l := range listings {
		switch {
		case l.Score() >= 100:
			s.Excellent++
		case l.Score() >= 75:
			s.Good++
		}
		if l.IsVC() {
			s.VCs++
		} else {
			s.Jobs++
		}
	}
	writeJSON(w, s)
}

// Refresh drops the cache so the next read hits storage. Mirrors the UI's
// manual "clear cache" control.
func (h ListingsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.Listings.Invalidate()
	if h.Hub != nil {
		h.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypeCacheInvalidated, 1, nil))
	}
	writeJSON(w, map[string]any{"ok": true})
}
