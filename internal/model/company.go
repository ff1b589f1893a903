package model

// CompanyProfile is the company detail page payload. IsDemo marks the
// placeholder profile served when the backing record is absent.
type CompanyProfile struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Slug              string         `json:"slug"`
	Description       string         `json:"description"`
	Tags              []string       `json:"tags"`
	RelatedCompanyIDs []string       `json:"relatedCompanyIds"`
	AppearedIn        map[string]int `json:"appearedIn"`
	AudienceProfile   string         `json:"audienceProfile,omitempty"`
	MarketOverview    string         `json:"marketOverview,omitempty"`
	Image             string         `json:"image,omitempty"`
	IsDemo            bool           `json:"isDemo"`
}

// RelatedCompany is the compact form shown alongside a company profile.
type RelatedCompany struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
