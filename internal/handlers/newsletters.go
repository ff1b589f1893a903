package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/timemedia/adlibrary/internal/fixture"
	"github.com/timemedia/adlibrary/internal/model"
)

// NewsletterReader resolves newsletter detail reads. Implemented by
// store.NewsletterStore and fixture.Cache.
type NewsletterReader interface {
	GetNewsletterBySlug(ctx context.Context, slug string) (*model.NewsletterProfile, error)
	GetNewsletterMentions(ctx context.Context, newsletterID string) ([]model.Ad, error)
}

// newsletterResponse is the newsletter detail payload.
type newsletterResponse struct {
	Newsletter model.NewsletterProfile `json:"newsletter"`
	Mentions   []model.Ad              `json:"mentions"`
}

// NewsletterHandler serves newsletter detail reads by slug with the same
// demo-profile soft fallback as company pages.
func NewsletterHandler(newsletters NewsletterReader, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := c.Params("slug")

		profile, err := newsletters.GetNewsletterBySlug(c.Context(), slug)
		if err != nil {
			log.Error("newsletter lookup failed", zap.String("slug", slug), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"error": "failed to load newsletter"})
		}
		if profile == nil {
			return c.JSON(newsletterResponse{
				Newsletter: fixture.DemoNewsletter(),
				Mentions:   fixture.DemoMentions(time.Now()),
			})
		}

		mentions, err := newsletters.GetNewsletterMentions(c.Context(), profile.ID)
		if err != nil {
			log.Error("newsletter mentions failed", zap.String("slug", slug), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"error": "failed to load newsletter mentions"})
		}
		if mentions == nil {
			mentions = []model.Ad{}
		}

		return c.JSON(newsletterResponse{
			Newsletter: *profile,
			Mentions:   mentions,
		})
	}
}
