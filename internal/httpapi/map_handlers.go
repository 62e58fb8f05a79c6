package httpapi

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/cache"
	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/mapview"
)

type MapHandler struct {
	Listings *cache.Listings
	Log      *zap.Logger
	Metrics  *Metrics
}

// Get builds the map document for the current filter state. Query params:
// commute (rating substring, "All" disables), show_jobs / show_vcs
// ("false" hides), plus the area/min_score presentation filters.
func (h MapHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Metrics != nil {
		h.Metrics.MapBuilds.Inc()
	}

	listings, err := h.Listings.Get(r.Context())
	if err != nil {
		h.Log.Warn("load listings failed", zap.Error(err))
		listings = nil
	}

	q := r.URL.Query()
	minScore, _ := strconv.Atoi(q.Get("min_score"))
	listings = FilterListings(listings, q["area"], minScore)

	opts := mapview.Options{
		Commute:  q.Get("commute"),
		ShowJobs: q.Get("show_jobs") != "false",
		ShowVCs:  q.Get("show_vcs") != "false",
	}
	if opts.Commute == "" {
		opts.Commute = "All"
	}

	writeJSON(w, mapview.Build(listings, opts))
}
