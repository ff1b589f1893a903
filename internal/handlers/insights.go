package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/timemedia/adlibrary/internal/service"
)

// TrendsHandler serves daily aggregated ad activity for the trend charts.
func TrendsHandler(insights *service.Insights, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := service.TrendFilter{
			Days:         c.QueryInt("days", 30),
			CompanyID:    c.Query("companyId"),
			NewsletterID: c.Query("newsletterId"),
			Tag:          c.Query("tag"),
		}

		points, err := insights.Daily(c.Context(), f)
		if err != nil {
			log.Error("trend aggregation failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"error": "failed to load trends"})
		}

		return c.JSON(points)
	}
}

// TopAdvertisersHandler serves the top-advertiser breakdown.
func TopAdvertisersHandler(insights *service.Insights, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		days := c.QueryInt("days", 30)
		limit := c.QueryInt("limit", 10)

		shares, err := insights.TopAdvertisers(c.Context(), days, limit)
		if err != nil {
			log.Error("top advertisers failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"error": "failed to load advertisers"})
		}

		return c.JSON(shares)
	}
}

// StatsHandler serves catalog totals for the home page.
func StatsHandler(insights *service.Insights, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := insights.Stats(c.Context())
		if err != nil {
			log.Error("stats failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"error": "failed to load stats"})
		}

		return c.JSON(stats)
	}
}
