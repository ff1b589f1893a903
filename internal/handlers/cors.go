package handlers

import "github.com/gofiber/fiber/v2"

// CORS applies the read API's cross-origin policy: open GET access with
// preflight short-circuited to an empty 200.
func CORS() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Access-Control-Allow-Origin", "*")
		c.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Method() == fiber.MethodOptions {
			c.Status(fiber.StatusOK)
			return nil
		}

		return c.Next()
	}
}
