package fixture

import (
	"time"

	"github.com/timemedia/adlibrary/internal/model"
)

// Demo entities keep detail pages navigable when a slug has no backing
// record yet: the handlers serve these flagged placeholders instead of a
// hard 404.

// DemoCompany returns the placeholder company profile.
func DemoCompany() model.CompanyProfile {
	return model.CompanyProfile{
		ID:   "0",
		Name: "Demo Company",
		Slug: "demo-company",
		Description: "This is a demo company page showing what company insights " +
			"could look like. Real data for this company is coming soon!",
		Tags:              []string{"tech", "retail", "demo"},
		RelatedCompanyIDs: []string{"demo-1", "demo-2"},
		AppearedIn: map[string]int{
			"The Neuron":     12,
			"Milk Road":      8,
			"The Rundown AI": 5,
		},
		AudienceProfile: "Demo Company has been targeting newsletters with audiences " +
			"that fit a professional marketer profile, interested in finance, stock " +
			"market trends, and practical marketing strategies.",
		MarketOverview: "This is a sample market overview showing how we analyze " +
			"companies in our database. When this company is added to our system, " +
			"you'll see real competitive intelligence and market analysis here.",
		IsDemo: true,
	}
}

// DemoRelatedCompanies returns the placeholder competitor entries.
func DemoRelatedCompanies() []model.RelatedCompany {
	return []model.RelatedCompany{
		{
			ID:          "demo-1",
			Name:        "Sample Competitor 1",
			Description: "A demonstration of how competitor insights would appear",
		},
		{
			ID:          "demo-2",
			Name:        "Sample Competitor 2",
			Description: "Another example of competitor analysis presentation",
		},
	}
}

// DemoNewsletter returns the placeholder newsletter profile.
func DemoNewsletter() model.NewsletterProfile {
	return model.NewsletterProfile{
		ID:   "0",
		Name: "Demo Newsletter",
		Slug: "demo-newsletter",
		Description: "This is a demo newsletter page showing what newsletter " +
			"insights could look like. Real data for this newsletter is coming soon!",
		Tags:   []string{"Tech", "Finance", "Marketing", "Demo"},
		IsDemo: true,
	}
}

// DemoMentions returns sample ads for the placeholder pages, dated relative
// to now so the timeline always looks current.
func DemoMentions(now time.Time) []model.Ad {
	demo := DemoCompany()
	company := model.Company{
		ID:   demo.ID,
		Name: demo.Name,
		Slug: demo.Slug,
		Tags: []string{"Demo"},
	}
	copies := []struct {
		copy       string
		daysAgo    int
		newsletter string
	}{
		{"This is a sample ad showing how the company's advertising would be displayed in our system.", 2, "The Neuron"},
		{"Another example of how ads appear in our system. This helps demonstrate the layout and information displayed.", 5, "Milk Road"},
		{"A third sample ad to show how multiple ads from the same company are displayed in our system.", 8, "The Rundown AI"},
	}

	ads := make([]model.Ad, len(copies))
	for i, c := range copies {
		ads[i] = model.Ad{
			ID:          "demo-mention-" + string(rune('1'+i)),
			CompanyID:   company.ID,
			CompanyName: company.Name,
			AdCopy:      c.copy,
			Date:        now.AddDate(0, 0, -c.daysAgo),
			Newsletters: []model.Newsletter{
				{ID: model.Slugify(c.newsletter), Name: c.newsletter, Slug: model.Slugify(c.newsletter)},
			},
			Company:      company,
			Link:         "#",
			ReadMoreLink: "#",
		}
	}
	return ads
}
