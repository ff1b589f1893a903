package model

// NewsletterProfile is the newsletter detail page payload.
type NewsletterProfile struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	TrafficRank int      `json:"traffic_rank"`
	IsDemo      bool     `json:"isDemo"`
}
