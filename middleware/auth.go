package middleware

import (
	"github.com/gofiber/fiber/v2"

	"eduquest/config"
	"eduquest/models"
	"eduquest/utils"
)

const sessionKey = "session"

// AuthMiddleware parses the JWT and stores the session in locals for the
// handlers downstream.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := utils.SessionFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals(sessionKey, sess)
		return c.Next()
	}
}

// AdminMiddleware gates admin-only routes. It runs after AuthMiddleware.
func AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := c.Locals(sessionKey).(models.Session)
		if !ok {
			return utils.Unauthorized(c, "Unauthorized")
		}
		if !sess.IsAdmin() {
			return utils.Forbidden(c, "Admin access required")
		}
		return c.Next()
	}
}

// SessionFromCtx returns the session placed in locals by AuthMiddleware.
func SessionFromCtx(c *fiber.Ctx) (models.Session, bool) {
	sess, ok := c.Locals(sessionKey).(models.Session)
	return sess, ok
}
