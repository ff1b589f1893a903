package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/timemedia/adlibrary/internal/query"
	"github.com/timemedia/adlibrary/internal/service"
)

// queryValues converts fasthttp query args into url.Values so the state
// codec sees repeated parameters like tags and newsletters.
func queryValues(c *fiber.Ctx) url.Values {
	v := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, val []byte) {
		v.Add(string(key), string(val))
	})
	return v
}

// AdsHandler serves the read-only ad search endpoint. The whole
// filter/sort/paginate pipeline runs server-side; local-mode clients run
// the identical engine themselves.
func AdsHandler(source service.Source, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v := queryValues(c)
		st := query.Decode(v)
		if !v.Has("pageSize") {
			// the library table is the endpoint's primary consumer
			st.Pagination.PageSize = query.TablePageSize
		}

		res, err := source.Query(c.Context(), st)
		if err != nil {
			log.Error("ads query failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"error": "failed to load ads"})
		}

		return c.JSON(res)
	}
}
