package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/timemedia/adlibrary/internal/fixture"
	"github.com/timemedia/adlibrary/internal/model"
)

// CompanyReader resolves company detail reads. Implemented by
// store.CompanyStore and fixture.Cache.
type CompanyReader interface {
	GetBySlug(ctx context.Context, slug string) (*model.CompanyProfile, error)
	GetRelated(ctx context.Context, ids []string) ([]model.RelatedCompany, error)
	GetMentions(ctx context.Context, companyID string) ([]model.Ad, error)
}

// companyResponse is the company detail payload.
type companyResponse struct {
	Company          model.CompanyProfile   `json:"company"`
	Mentions         []model.Ad             `json:"mentions"`
	RelatedCompanies []model.RelatedCompany `json:"relatedCompanies"`
}

// CompanyHandler serves company detail reads by slug. A missing company
// degrades to a flagged demo profile so detail pages stay navigable while
// the catalog is partially populated; that fallback is a product decision,
// not an error path.
func CompanyHandler(companies CompanyReader, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := c.Params("slug")

		profile, err := companies.GetBySlug(c.Context(), slug)
		if err != nil {
			log.Error("company lookup failed", zap.String("slug", slug), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"error": "failed to load company"})
		}
		if profile == nil {
			return c.JSON(companyResponse{
				Company:          fixture.DemoCompany(),
				Mentions:         fixture.DemoMentions(time.Now()),
				RelatedCompanies: fixture.DemoRelatedCompanies(),
			})
		}

		mentions, err := companies.GetMentions(c.Context(), profile.ID)
		if err != nil {
			log.Error("company mentions failed", zap.String("slug", slug), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"error": "failed to load company mentions"})
		}
		if mentions == nil {
			mentions = []model.Ad{}
		}

		related, err := companies.GetRelated(c.Context(), profile.RelatedCompanyIDs)
		if err != nil {
			// the profile is still useful without the sidebar
			log.Warn("related companies failed", zap.String("slug", slug), zap.Error(err))
		}
		if related == nil {
			related = []model.RelatedCompany{}
		}

		return c.JSON(companyResponse{
			Company:          *profile,
			Mentions:         mentions,
			RelatedCompanies: related,
		})
	}
}
