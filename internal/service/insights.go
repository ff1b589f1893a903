package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/timemedia/adlibrary/internal/model"
	"github.com/timemedia/adlibrary/internal/query"
)

const defaultTrendDays = 30

// TrendFilter scopes trend aggregation to one company, newsletter or tag
// over a trailing window of days.
type TrendFilter struct {
	Days         int
	CompanyID    string
	NewsletterID string
	Tag          string
}

// TrendPoint is one day of aggregated ad activity. Breakdown maps are
// attached only for the dimension the filter scopes.
type TrendPoint struct {
	Date         time.Time      `json:"date"`
	Count        int            `json:"count"`
	ByCompany    map[string]int `json:"by_company,omitempty"`
	ByNewsletter map[string]int `json:"by_newsletter,omitempty"`
	ByTag        map[string]int `json:"by_tag,omitempty"`
}

// AdvertiserShare ranks one company's share of recent ad activity.
type AdvertiserShare struct {
	CompanyID   string `json:"companyId"`
	CompanyName string `json:"companyName"`
	Count       int    `json:"count"`
}

// CatalogStats summarizes the catalog for the home page.
type CatalogStats struct {
	TotalAds         int        `json:"totalAds"`
	TotalCompanies   int        `json:"totalCompanies"`
	TotalNewsletters int        `json:"totalNewsletters"`
	FirstDate        *time.Time `json:"firstDate,omitempty"`
	LastDate         *time.Time `json:"lastDate,omitempty"`
}

// Insights aggregates the data behind the trend charts and top-advertiser
// breakdowns.
type Insights struct {
	provider AdProvider
	now      func() time.Time
}

// NewInsights creates an insights service over a record provider.
func NewInsights(p AdProvider) *Insights {
	return &Insights{provider: p, now: time.Now}
}

// Daily returns one point per calendar day over the trailing window, oldest
// first, including days with no activity.
func (s *Insights) Daily(ctx context.Context, f TrendFilter) ([]TrendPoint, error) {
	if f.Days <= 0 {
		f.Days = defaultTrendDays
	}

	ads, err := s.provider.ListAds(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ads: %w", err)
	}

	end := query.Day(s.now())
	start := end.AddDate(0, 0, -f.Days)

	buckets := map[time.Time][]model.Ad{}
	for _, ad := range ads {
		if !trendMatch(ad, f) {
			continue
		}
		buckets[query.Day(ad.Date)] = append(buckets[query.Day(ad.Date)], ad)
	}

	var points []TrendPoint
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		dayAds := buckets[day]
		point := TrendPoint{Date: day, Count: len(dayAds)}
		if f.CompanyID != "" {
			point.ByCompany = map[string]int{}
			for _, ad := range dayAds {
				point.ByCompany[ad.CompanyName]++
			}
		}
		if f.NewsletterID != "" {
			point.ByNewsletter = map[string]int{}
			for _, ad := range dayAds {
				for _, n := range ad.Newsletters {
					point.ByNewsletter[n.Name]++
				}
			}
		}
		if f.Tag != "" {
			point.ByTag = map[string]int{}
			for _, ad := range dayAds {
				for _, tag := range ad.Company.Tags {
					point.ByTag[tag]++
				}
			}
		}
		points = append(points, point)
	}

	return points, nil
}

// trendMatch applies the trend filter's scoping dimensions.
func trendMatch(ad model.Ad, f TrendFilter) bool {
	if f.CompanyID != "" && ad.CompanyID != f.CompanyID {
		return false
	}
	if f.NewsletterID != "" {
		found := false
		for _, n := range ad.Newsletters {
			if n.ID == f.NewsletterID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Tag != "" {
		found := false
		for _, tag := range ad.Company.Tags {
			if tag == f.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// TopAdvertisers returns the most active companies over the trailing
// window, ties broken by name for a stable ranking.
func (s *Insights) TopAdvertisers(ctx context.Context, days, limit int) ([]AdvertiserShare, error) {
	if days <= 0 {
		days = defaultTrendDays
	}
	if limit <= 0 {
		limit = 10
	}

	ads, err := s.provider.ListAds(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ads: %w", err)
	}

	cutoff := query.Day(s.now()).AddDate(0, 0, -days)
	counts := map[string]*AdvertiserShare{}
	for _, ad := range ads {
		if query.Day(ad.Date).Before(cutoff) {
			continue
		}
		share, ok := counts[ad.CompanyID]
		if !ok {
			share = &AdvertiserShare{CompanyID: ad.CompanyID, CompanyName: ad.CompanyName}
			counts[ad.CompanyID] = share
		}
		share.Count++
	}

	shares := make([]AdvertiserShare, 0, len(counts))
	for _, share := range counts {
		shares = append(shares, *share)
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].CompanyName < shares[j].CompanyName
	})

	if len(shares) > limit {
		shares = shares[:limit]
	}
	return shares, nil
}

// Stats summarizes the catalog from the provider's record set.
func (s *Insights) Stats(ctx context.Context) (*CatalogStats, error) {
	ads, err := s.provider.ListAds(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ads: %w", err)
	}

	stats := &CatalogStats{TotalAds: len(ads)}
	companies := map[string]struct{}{}
	newsletters := map[string]struct{}{}
	for _, ad := range ads {
		companies[ad.CompanyID] = struct{}{}
		for _, n := range ad.Newsletters {
			newsletters[n.ID] = struct{}{}
		}
		if stats.FirstDate == nil || ad.Date.Before(*stats.FirstDate) {
			d := ad.Date
			stats.FirstDate = &d
		}
		if stats.LastDate == nil || ad.Date.After(*stats.LastDate) {
			d := ad.Date
			stats.LastDate = &d
		}
	}
	stats.TotalCompanies = len(companies)
	stats.TotalNewsletters = len(newsletters)

	return stats, nil
}
