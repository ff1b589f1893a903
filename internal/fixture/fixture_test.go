package fixture

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var anchor = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

func TestGeneratorIsDeterministic(t *testing.T) {
	first := NewGeneratorAt(42, anchor).Ads(50)
	second := NewGeneratorAt(42, anchor).Ads(50)
	assert.Equal(t, first, second)
}

func TestGeneratorSeedsDiffer(t *testing.T) {
	a := NewGeneratorAt(1, anchor).Ads(10)
	b := NewGeneratorAt(2, anchor).Ads(10)
	assert.NotEqual(t, a, b)
}

func TestGeneratorAdsAreWellFormed(t *testing.T) {
	ads := NewGeneratorAt(7, anchor).Ads(100)
	require.Len(t, ads, 100)
	for _, ad := range ads {
		assert.NotEmpty(t, ad.ID)
		assert.Equal(t, ad.CompanyID, ad.Company.ID)
		assert.False(t, ad.Date.IsZero())
		assert.NotEmpty(t, ad.Newsletters)
		assert.NotEmpty(t, ad.Company.Tags)
	}
}

func TestCacheRegeneratesAfterTTL(t *testing.T) {
	c := NewCache(42, 20, time.Hour)
	clock := anchor
	c.now = func() time.Time { return clock }

	ctx := context.Background()
	first, err := c.ListAds(ctx)
	require.NoError(t, err)

	// inside the TTL the same slice is served
	clock = clock.Add(30 * time.Minute)
	again, err := c.ListAds(ctx)
	require.NoError(t, err)
	assert.Same(t, &first[0], &again[0])

	// a day later the window has moved, so the catalog regenerates
	clock = clock.Add(24 * time.Hour)
	refreshed, err := c.ListAds(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first, refreshed)
}

func TestCacheCompanyLookup(t *testing.T) {
	c := NewCache(42, 50, time.Hour)
	ctx := context.Background()

	ads, err := c.ListAds(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, ads)

	slug := ads[0].Company.Slug
	profile, err := c.GetBySlug(ctx, slug)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, ads[0].Company.Name, profile.Name)
	assert.False(t, profile.IsDemo)
	assert.NotEmpty(t, profile.AppearedIn)

	mentions, err := c.GetMentions(ctx, profile.ID)
	require.NoError(t, err)
	require.NotEmpty(t, mentions)
	for i := 1; i < len(mentions); i++ {
		assert.False(t, mentions[i].Date.Before(mentions[i-1].Date))
	}

	missing, err := c.GetBySlug(ctx, "no-such-company")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCacheNewsletterLookup(t *testing.T) {
	c := NewCache(42, 50, time.Hour)
	ctx := context.Background()

	ads, err := c.ListAds(ctx)
	require.NoError(t, err)
	n := ads[0].Newsletters[0]

	profile, err := c.GetNewsletterBySlug(ctx, n.Slug)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, n.Name, profile.Name)

	mentions, err := c.GetNewsletterMentions(ctx, n.ID)
	require.NoError(t, err)
	require.NotEmpty(t, mentions)
	for _, ad := range mentions {
		found := false
		for _, adn := range ad.Newsletters {
			if adn.ID == n.ID {
				found = true
			}
		}
		assert.True(t, found)
	}
}

func TestDemoEntitiesAreFlagged(t *testing.T) {
	assert.True(t, DemoCompany().IsDemo)
	assert.True(t, DemoNewsletter().IsDemo)

	mentions := DemoMentions(anchor)
	require.Len(t, mentions, 3)
	for _, ad := range mentions {
		assert.Equal(t, DemoCompany().ID, ad.CompanyID)
		assert.True(t, ad.Date.Before(anchor))
	}
}
