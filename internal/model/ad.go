package model

import (
	"regexp"
	"strings"
	"time"
)

// Newsletter identifies a newsletter an ad appeared in.
type Newsletter struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	TrafficRank int    `json:"traffic_rank"`
}

// Company is the advertiser embedded in an ad record.
type Company struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Tags        []string `json:"tags"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`
}

// Ad is one observed advertisement sighting. Records are immutable once
// created; querying produces new slices and never mutates them in place.
type Ad struct {
	ID           string       `json:"id"`
	CompanyID    string       `json:"companyId"`
	CompanyName  string       `json:"companyName"`
	AdCopy       string       `json:"adCopy"`
	Date         time.Time    `json:"date"`
	Newsletters  []Newsletter `json:"newsletters"`
	Company      Company      `json:"company"`
	Link         string       `json:"link,omitempty"`
	ReadMoreLink string       `json:"readMoreLink,omitempty"`
	Image        string       `json:"image,omitempty"`
}

// NewsletterCount returns how many newsletters the ad appeared in.
func (a Ad) NewsletterCount() int {
	return len(a.Newsletters)
}

var slugStrip = regexp.MustCompile(`[^\w ]+`)

// Slugify converts an entity name into its URL slug form.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = slugStrip.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), "-")
}
