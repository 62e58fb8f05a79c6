package domain

import "strings"

// Listing is one row of jobs_cleaned after normalization. Every field is
// present on every listing the loader hands out; a nil pointer means the
// underlying column was NULL or missing entirely.
type Listing struct {
	Type            *string `json:"type"` // "JOB" or "VC"
	Company         *string `json:"company"`
	Title           *string `json:"title"`
	Area            *string `json:"area"`
	Location        *string `json:"location"`
	Address         *string `json:"address"`
	Stage           *string `json:"stage"`
	Focus           *string `json:"focus"`
	TransitDuration *string `json:"transitDuration"`
	TransitRoutes   *string `json:"transitRoutes"`
	TransitChanges  *int64  `json:"transitChanges"`
	CommuteRating   *string `json:"commuteRating"`
	CommuteScore    *int64  `json:"commuteScore"`
	GoogleMapsLink  *string `json:"googleMapsLink"`
	CareerURL       *string `json:"careerUrl"`
	JobURL          *string `json:"jobUrl"`
	LinkedInSearch  *string `json:"linkedinSearch"`
	ContactName     *string `json:"contactName"`
	ContactEmail    *string `json:"contactEmail"`
	ClosestMetro    *string `json:"closestMetro"`
}

// IsVC reports whether the listing is a VC firm. A nil or non-"VC" type
// (any casing) means it is treated as a job.
func (l Listing) IsVC() bool {
	return l.Type != nil && strings.EqualFold(strings.TrimSpace(*l.Type), "VC")
}

// Score returns the commute score with a missing value read as 0.
func (l Listing) Score() int64 {
	if l.CommuteScore == nil {
		return 0
	}
	return *l.CommuteScore
}
