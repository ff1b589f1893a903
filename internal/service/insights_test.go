package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timemedia/adlibrary/internal/model"
)

var trendAnchor = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func trendAd(id, companyID, companyName string, daysAgo int, tags []string, newsletterID string) model.Ad {
	return model.Ad{
		ID:          id,
		CompanyID:   companyID,
		CompanyName: companyName,
		AdCopy:      "copy",
		Date:        trendAnchor.AddDate(0, 0, -daysAgo),
		Newsletters: []model.Newsletter{
			{ID: newsletterID, Name: newsletterID, Slug: newsletterID},
		},
		Company: model.Company{ID: companyID, Name: companyName, Tags: tags},
	}
}

func insightsOver(ads []model.Ad) *Insights {
	s := NewInsights(&sliceProvider{ads: ads})
	s.now = func() time.Time { return trendAnchor }
	return s
}

func TestDailyCoversWholeWindow(t *testing.T) {
	ads := []model.Ad{
		trendAd("a", "c1", "Acme", 1, nil, "n1"),
		trendAd("b", "c1", "Acme", 1, nil, "n1"),
		trendAd("c", "c2", "Globex", 3, nil, "n2"),
		trendAd("old", "c2", "Globex", 90, nil, "n2"),
	}

	points, err := insightsOver(ads).Daily(context.Background(), TrendFilter{Days: 7})
	require.NoError(t, err)
	require.Len(t, points, 8, "one point per day, endpoints inclusive")

	var total int
	for _, p := range points {
		total += p.Count
		assert.Nil(t, p.ByCompany)
		assert.Nil(t, p.ByNewsletter)
	}
	assert.Equal(t, 3, total, "records outside the window are excluded")
}

func TestDailyCompanyScopeAndBreakdown(t *testing.T) {
	ads := []model.Ad{
		trendAd("a", "c1", "Acme", 2, nil, "n1"),
		trendAd("b", "c2", "Globex", 2, nil, "n1"),
	}

	points, err := insightsOver(ads).Daily(context.Background(), TrendFilter{Days: 7, CompanyID: "c1"})
	require.NoError(t, err)

	var matched int
	for _, p := range points {
		matched += p.Count
		require.NotNil(t, p.ByCompany)
		assert.Zero(t, p.ByCompany["Globex"])
	}
	assert.Equal(t, 1, matched)
}

func TestDailyTagScope(t *testing.T) {
	ads := []model.Ad{
		trendAd("a", "c1", "Acme", 2, []string{"tech"}, "n1"),
		trendAd("b", "c2", "Globex", 2, []string{"finance"}, "n1"),
	}

	points, err := insightsOver(ads).Daily(context.Background(), TrendFilter{Days: 7, Tag: "tech"})
	require.NoError(t, err)

	var matched int
	for _, p := range points {
		matched += p.Count
	}
	assert.Equal(t, 1, matched)
}

func TestTopAdvertisers(t *testing.T) {
	ads := []model.Ad{
		trendAd("a", "c1", "Acme", 1, nil, "n1"),
		trendAd("b", "c1", "Acme", 2, nil, "n1"),
		trendAd("c", "c2", "Globex", 3, nil, "n1"),
		trendAd("old", "c3", "Initech", 200, nil, "n1"),
	}

	shares, err := insightsOver(ads).TopAdvertisers(context.Background(), 30, 10)
	require.NoError(t, err)

	require.Len(t, shares, 2, "stale advertisers fall out of the window")
	assert.Equal(t, "Acme", shares[0].CompanyName)
	assert.Equal(t, 2, shares[0].Count)
	assert.Equal(t, "Globex", shares[1].CompanyName)
}

func TestStats(t *testing.T) {
	ads := []model.Ad{
		trendAd("a", "c1", "Acme", 1, nil, "n1"),
		trendAd("b", "c2", "Globex", 5, nil, "n2"),
	}

	stats, err := insightsOver(ads).Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalAds)
	assert.Equal(t, 2, stats.TotalCompanies)
	assert.Equal(t, 2, stats.TotalNewsletters)
	require.NotNil(t, stats.FirstDate)
	require.NotNil(t, stats.LastDate)
	assert.True(t, stats.FirstDate.Before(*stats.LastDate))
}
