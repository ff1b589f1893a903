package fixture

import (
	"context"
	"sync"
	"time"

	"github.com/timemedia/adlibrary/internal/model"
	"github.com/timemedia/adlibrary/internal/query"
)

// Cache serves generated ads, regenerating the catalog after an explicit
// TTL. It satisfies the same provider and detail-read contracts as the
// Postgres stores, so fixture-backed serving is a constructor-injected
// swap rather than implicit module state.
type Cache struct {
	seed  int64
	count int
	ttl   time.Duration
	now   func() time.Time

	mu        sync.Mutex
	ads       []model.Ad
	companies []model.Company
	refreshed time.Time
}

// NewCache creates a fixture cache. count ads are generated lazily on first
// read and again once ttl elapses.
func NewCache(seed int64, count int, ttl time.Duration) *Cache {
	return &Cache{
		seed:  seed,
		count: count,
		ttl:   ttl,
		now:   time.Now,
	}
}

// ListAds returns the cached catalog, regenerating it when expired.
func (c *Cache) ListAds(ctx context.Context) ([]model.Ad, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refresh()
	return c.ads, nil
}

func (c *Cache) refresh() {
	if c.ads != nil && c.now().Sub(c.refreshed) <= c.ttl {
		return
	}
	gen := NewGeneratorAt(c.seed, c.now())
	c.ads = gen.Ads(c.count)
	c.companies = gen.Companies()
	c.refreshed = c.now()
}

// GetBySlug resolves a company profile from the generated roster. Returns
// nil when the slug is not part of the fixture catalog.
func (c *Cache) GetBySlug(ctx context.Context, slug string) (*model.CompanyProfile, error) {
	ads, err := c.ListAds(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	companies := c.companies
	c.mu.Unlock()

	for _, company := range companies {
		if company.Slug != slug {
			continue
		}
		appearedIn := map[string]int{}
		var related []string
		for _, ad := range ads {
			if ad.CompanyID != company.ID {
				continue
			}
			for _, n := range ad.Newsletters {
				appearedIn[n.Name]++
			}
		}
		for _, other := range companies {
			if other.ID != company.ID && len(related) < 2 {
				related = append(related, other.ID)
			}
		}
		return &model.CompanyProfile{
			ID:                company.ID,
			Name:              company.Name,
			Slug:              company.Slug,
			Description:       company.Description,
			Tags:              company.Tags,
			RelatedCompanyIDs: related,
			AppearedIn:        appearedIn,
			Image:             company.Image,
		}, nil
	}
	return nil, nil
}

// GetRelated resolves compact company records for the given ids.
func (c *Cache) GetRelated(ctx context.Context, ids []string) ([]model.RelatedCompany, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if _, err := c.ListAds(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	companies := c.companies
	c.mu.Unlock()

	var out []model.RelatedCompany
	for _, company := range companies {
		for _, id := range ids {
			if company.ID == id {
				out = append(out, model.RelatedCompany{
					ID:          company.ID,
					Name:        company.Name,
					Description: company.Description,
				})
			}
		}
	}
	return out, nil
}

// GetMentions returns a company's ads, oldest first.
func (c *Cache) GetMentions(ctx context.Context, companyID string) ([]model.Ad, error) {
	ads, err := c.ListAds(ctx)
	if err != nil {
		return nil, err
	}
	st := query.DefaultState()
	st.Filters.CompanyID = companyID
	st.Sort = query.Sort{Field: query.FieldDate, Direction: query.Asc}
	st.Pagination = query.Pagination{Page: 1, PageSize: len(ads) + 1}
	return query.Run(ads, st).Data, nil
}

// GetNewsletterBySlug resolves a newsletter profile from the generated
// roster. Returns nil when the slug is not part of the fixture catalog.
func (c *Cache) GetNewsletterBySlug(ctx context.Context, slug string) (*model.NewsletterProfile, error) {
	ads, err := c.ListAds(ctx)
	if err != nil {
		return nil, err
	}
	for _, ad := range ads {
		for _, n := range ad.Newsletters {
			if n.Slug == slug {
				return &model.NewsletterProfile{
					ID:          n.ID,
					Name:        n.Name,
					Slug:        n.Slug,
					Description: n.Name + " is part of the fixture catalog.",
					Tags:        []string{"demo"},
					TrafficRank: n.TrafficRank,
				}, nil
			}
		}
	}
	return nil, nil
}

// GetNewsletterMentions returns a newsletter's ads, newest first.
func (c *Cache) GetNewsletterMentions(ctx context.Context, newsletterID string) ([]model.Ad, error) {
	ads, err := c.ListAds(ctx)
	if err != nil {
		return nil, err
	}
	st := query.DefaultState()
	st.Filters.NewsletterIDs = []string{newsletterID}
	st.Pagination = query.Pagination{Page: 1, PageSize: len(ads) + 1}
	return query.Run(ads, st).Data, nil
}
