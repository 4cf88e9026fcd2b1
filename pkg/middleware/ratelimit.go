package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// idleLimiterTTL is how long a user's limiter survives without requests.
const idleLimiterTTL = 30 * time.Minute

// UserRateLimit limits requests per authenticated user. It must run after AuthMiddleware.
func UserRateLimit(perMinute, burst int, logger *zap.Logger) fiber.Handler {
	limiters := cache.New(idleLimiterTTL, 2*idleLimiterTTL)
	every := rate.Every(time.Minute / time.Duration(max(perMinute, 1)))

	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(LocalUserID).(string)

		limiter := userLimiter(limiters, userID, every, max(burst, 1))

		if !limiter.Allow() {
			logger.Warn("Rate limit exceeded",
				zap.String("user_id", userID),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
			)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests",
			})
		}
		return c.Next()
	}
}

// userLimiter returns the user's limiter, creating it on first use. Add is atomic, so
// concurrent first requests end up sharing one bucket.
func userLimiter(limiters *cache.Cache, userID string, every rate.Limit, burst int) *rate.Limiter {
	if cached, ok := limiters.Get(userID); ok {
		limiter := cached.(*rate.Limiter)
		// Refresh the TTL so active users keep their bucket.
		limiters.SetDefault(userID, limiter)
		return limiter
	}

	limiter := rate.NewLimiter(every, burst)
	if err := limiters.Add(userID, limiter, cache.DefaultExpiration); err != nil {
		if cached, ok := limiters.Get(userID); ok {
			return cached.(*rate.Limiter)
		}
	}
	return limiter
}
