package mapview

import (
	"bytes"
	"html/template"

	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/domain"
)

type popupData struct {
	Company         string
	Area            string
	Stage           string
	Focus           string
	TransitDuration string
	TransitRoutes   string
	CommuteRating   string
	ClosestMetro    string
	CareerURL       string
	GoogleMapsLink  string
	JobURL          string
	LinkedInSearch  string
}

var vcPopup = template.Must(template.New("vc").Parse(`<div style="width: 300px">
  <h4>💼 {{.Company}}</h4>
  <b>Type:</b> VC Firm<br>
  <b>Stage:</b> {{.Stage}}<br>
  <b>Focus:</b> {{.Focus}}<br>
  <b>Area:</b> {{.Area}}<br>
  <b>Commute:</b> {{.TransitDuration}}<br>
  <b>Routes:</b> {{.TransitRoutes}}<br>
  <b>Rating:</b> {{.CommuteRating}}<br>
  <br>
  <a href="{{.CareerURL}}" target="_blank">🔗 Search Careers</a><br>
  <a href="{{.GoogleMapsLink}}" target="_blank">🗺️ Get Directions</a><br>
  <a href="{{.LinkedInSearch}}" target="_blank">🔍 Find Partners</a>
</div>`))

var jobPopup = template.Must(template.New("job").Parse(`<div style="width: 300px">
  <h4>💻 {{.Company}}</h4>
  <b>Type:</b> Tech Job<br>
  <b>Area:</b> {{.Area}}<br>
  <b>Commute:</b> {{.TransitDuration}}<br>
  <b>Routes:</b> {{.TransitRoutes}}<br>
  <b>Rating:</b> {{.CommuteRating}}<br>
  <b>Metro:</b> {{.ClosestMetro}}<br>
  <br>
  <a href="{{.CareerURL}}" target="_blank">🔗 Career Page</a><br>
  <a href="{{.GoogleMapsLink}}" target="_blank">🗺️ Get Directions</a><br>
  <a href="{{.JobURL}}" target="_blank">👔 Find Hiring Manager</a>
</div>`))

// renderPopup builds the description panel for one listing. Missing text
// fields show as "N/A" and missing links as "#"; the job link falls back to
// the career page when absent.
func renderPopup(l domain.Listing) string {
	d := popupData{
		Company:         strOr(l.Company, "Unknown"),
		Area:            strOr(l.Area, "N/A"),
		Stage:           strOr(l.Stage, "N/A"),
		Focus:           strOr(l.Focus, "N/A"),
		TransitDuration: strOr(l.TransitDuration, "N/A"),
		TransitRoutes:   strOr(l.TransitRoutes, "N/A"),
		CommuteRating:   strOr(l.CommuteRating, "N/A"),
		ClosestMetro:    strOr(l.ClosestMetro, "N/A"),
		CareerURL:       strOr(l.CareerURL, "#"),
		GoogleMapsLink:  strOr(l.GoogleMapsLink, "#"),
		JobURL:          strOr(l.JobURL, strOr(l.CareerURL, "#")),
		LinkedInSearch:  strOr(l.LinkedInSearch, "#"),
	}

	tpl := jobPopup
	if l.IsVC() {
		tpl = vcPopup
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, d); err != nil {
		return ""
	}
	return buf.String()
}
