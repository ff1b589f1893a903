// Package fixture generates a deterministic demo catalog. It backs local
// development, the seed command, and the placeholder entities served when a
// detail read misses the real catalog.
package fixture

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/timemedia/adlibrary/internal/model"
)

var companyNames = []string{
	"Apple", "Google", "Microsoft", "Amazon", "Meta",
	"Netflix", "Tesla", "Adobe", "Spotify", "Twitter",
}

var tagPool = []string{
	"tech", "ai", "finance", "marketing", "retail", "media", "saas", "crypto",
}

var newsletterSeed = []struct {
	name string
	rank int
}{
	{"The Neuron", 1},
	{"Milk Road", 2},
	{"The Rundown AI", 3},
	{"Morning Brew", 4},
	{"TLDR", 5},
	{"Lenny's Newsletter", 6},
}

var adCopyTemplates = []string{
	"Discover the new {product} - Revolutionary design meets exceptional performance",
	"Introducing {product} - The future of technology is here",
	"Experience the difference with {product}",
	"Transform your life with {product}",
	"The all-new {product} - Redefining excellence",
}

var products = []string{
	"iPhone", "Pixel", "Surface", "Echo", "Quest",
	"Smart TV", "Model Y", "Creative Suite", "Premium", "Blue",
}

// Generator produces ad records from a seeded source. The same seed and
// anchor date always yield the same catalog.
type Generator struct {
	rng         *rand.Rand
	end         time.Time
	companies   []model.Company
	newsletters []model.Newsletter
}

// NewGenerator creates a generator anchored at the current day.
func NewGenerator(seed int64) *Generator {
	return NewGeneratorAt(seed, time.Now())
}

// NewGeneratorAt creates a generator whose ad dates fall in the year ending
// on the given day.
func NewGeneratorAt(seed int64, now time.Time) *Generator {
	g := &Generator{
		rng: rand.New(rand.NewSource(seed)),
		end: time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC),
	}

	g.newsletters = make([]model.Newsletter, len(newsletterSeed))
	for i, n := range newsletterSeed {
		g.newsletters[i] = model.Newsletter{
			ID:          g.id(),
			Name:        n.name,
			Slug:        model.Slugify(n.name),
			TrafficRank: n.rank,
		}
	}

	g.companies = make([]model.Company, len(companyNames))
	for i, name := range companyNames {
		tags := g.pickTags()
		g.companies[i] = model.Company{
			ID:          g.id(),
			Name:        name,
			Slug:        model.Slugify(name),
			Tags:        tags,
			Description: name + " advertises across the newsletter ecosystem.",
			Image:       "https://picsum.photos/200?grayscale",
		}
	}

	return g
}

// Companies returns the generated advertiser roster.
func (g *Generator) Companies() []model.Company {
	return g.companies
}

// Newsletters returns the generated newsletter roster.
func (g *Generator) Newsletters() []model.Newsletter {
	return g.newsletters
}

// Ads returns n records drawn from the generated rosters.
func (g *Generator) Ads(n int) []model.Ad {
	ads := make([]model.Ad, n)
	for i := range ads {
		ads[i] = g.ad()
	}
	return ads
}

func (g *Generator) ad() model.Ad {
	company := g.companies[g.rng.Intn(len(g.companies))]
	template := adCopyTemplates[g.rng.Intn(len(adCopyTemplates))]
	product := products[g.rng.Intn(len(products))]

	count := 1 + g.rng.Intn(4)
	perm := g.rng.Perm(len(g.newsletters))[:count]
	newsletters := make([]model.Newsletter, count)
	for i, idx := range perm {
		newsletters[i] = g.newsletters[idx]
	}

	return model.Ad{
		ID:           g.id(),
		CompanyID:    company.ID,
		CompanyName:  company.Name,
		AdCopy:       strings.ReplaceAll(template, "{product}", product),
		Date:         g.date(),
		Newsletters:  newsletters,
		Company:      company,
		Link:         "https://" + company.Slug + ".example.com",
		ReadMoreLink: "https://" + company.Slug + ".example.com/ads",
		Image:        company.Image,
	}
}

// date picks an instant within the trailing year, at hour granularity so
// two generators created on the same day agree exactly.
func (g *Generator) date() time.Time {
	days := g.rng.Intn(365)
	hours := g.rng.Intn(24)
	return g.end.AddDate(0, 0, -days).Add(time.Duration(hours) * time.Hour)
}

func (g *Generator) pickTags() []string {
	count := 1 + g.rng.Intn(3)
	perm := g.rng.Perm(len(tagPool))[:count]
	tags := make([]string, count)
	for i, idx := range perm {
		tags[i] = tagPool[idx]
	}
	return tags
}

func (g *Generator) id() string {
	// drawn from the seeded source so generated ids are reproducible
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		// rand.Rand's Read never fails
		panic(err)
	}
	return id.String()
}
