// Package mapview turns normalized listings into a renderable map document:
// one fixed home marker plus one styled marker per listing that survives the
// type and commute-rating filters.
package mapview

import (
	"fmt"
	"strings"

	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/domain"
	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/geo"
)

// Style is the marker color/icon pair picked by classification.
type Style struct {
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// Marker is one pin on the map. Popup carries rendered HTML for the UI's
// popup panel; the UI treats it as opaque.
type Marker struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Color   string  `json:"color"`
	Icon    string  `json:"icon"`
	Popup   string  `json:"popup"`
	Tooltip string  `json:"tooltip"`
}

// Document is the full renderable map.
type Document struct {
	CenterLat float64  `json:"centerLat"`
	CenterLon float64  `json:"centerLon"`
	Zoom      int      `json:"zoom"`
	Tiles     string   `json:"tiles"`
	Markers   []Marker `json:"markers"`
}

// Options are the map-level filters. Commute == "All" disables the rating
// filter; otherwise a listing survives only when its rating contains the
// filter string (case-sensitive).
type Options struct {
	Commute  string
	ShowJobs bool
	ShowVCs  bool
}

// Build filters and classifies listings into a map document. It never fails:
// missing fields degrade to defaults, never to errors.
func Build(listings []domain.Listing, opts Options) Document {
	doc := Document{
		CenterLat: geo.Home.Lat,
		CenterLon: geo.Home.Lon,
		Zoom:      11,
		Tiles:     "OpenStreetMap",
	}

	doc.Markers = append(doc.Markers, Marker{
		Lat:     geo.Home.Lat,
		Lon:     geo.Home.Lon,
		Color:   "red",
		Icon:    "home",
		Popup:   "🏠 Your Home<br>Culver City",
		Tooltip: "Your Location",
	})

	for _, l := range filter(listings, opts) {
		p := geo.Coords(strOr(l.Area, ""))
		style := Classify(l)

		emoji := "💻"
		if l.IsVC() {
			emoji = "💼"
		}
		doc.Markers = append(doc.Markers, Marker{
			Lat:     p.Lat,
			Lon:     p.Lon,
			Color:   style.Color,
			Icon:    style.Icon,
			Popup:   renderPopup(l),
			Tooltip: fmt.Sprintf("%s %s - %s", emoji, strOr(l.Company, "Unknown"), strOr(l.TransitDuration, "N/A")),
		})
	}
	return doc
}

// filter applies the rating filter, then the type toggles, in that order.
func filter(listings []domain.Listing, opts Options) []domain.Listing {
	out := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if opts.Commute != "" && opts.Commute != "All" {
			if l.CommuteRating == nil || !strings.Contains(*l.CommuteRating, opts.Commute) {
				continue
			}
		}
		if !opts.ShowJobs && !l.IsVC() {
			continue
		}
		if !opts.ShowVCs && l.IsVC() {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Classify picks the marker style from record type and commute score. A
// missing score reads as 0 everywhere, so score-less listings land in the
// lowest bucket rather than being dropped.
func Classify(l domain.Listing) Style {
	score := l.Score()
	if l.IsVC() {
		switch {
		case score >= 100:
			return Style{Color: "orange", Icon: "briefcase"}
		case score >= 75:
			return Style{Color: "beige", Icon: "briefcase"}
		default:
			return Style{Color: "lightgray", Icon: "briefcase"}
		}
	}
	switch {
	case score >= 100:
		return Style{Color: "green", Icon: "star"}
	case score >= 75:
		return Style{Color: "lightgreen", Icon: "star-half"}
	default:
		return Style{Color: "gray", Icon: "circle"}
	}
}

func strOr(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
