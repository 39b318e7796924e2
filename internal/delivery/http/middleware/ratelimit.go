package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/skate-scout/internal/pkg/errors"
	"github.com/skate-scout/internal/pkg/utils"
)

// RateLimiter - ограничение по IP: max запросов в минуту. max <= 0 отключает лимит
func RateLimiter(max int) fiber.Handler {
	if max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderRetryAfter, "60")
			return utils.SendError(c, errors.ErrTooManyRequests)
		},
	})
}
