package middleware

import (
	"strings"

	"apteekki/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the middleware chain.
const (
	LocalsClaims = "claims"
	LocalsUser   = "user"
)

// TokenRequired is a Fiber middleware that extracts the bearer token from
// the Authorization header and verifies it. Verified claims are stored in
// the request locals for RoleRequired and handlers.
func TokenRequired(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "authorization header is required")
		}

		// Expected format: "bearer <token>", scheme case-insensitive.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return unauthorized(c, "authorization header format must be 'bearer <token>'")
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			return unauthorized(c, "invalid token")
		}

		c.Locals(LocalsClaims, claims)
		return c.Next()
	}
}

// RoleRequired resolves the caller from the verified claims and rejects the
// request unless the user holds the required role. Must run after
// TokenRequired.
func RoleRequired(users *services.UserService, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(LocalsClaims).(*services.Claims)
		if !ok {
			return unauthorized(c, "authentication required")
		}

		user, err := users.GetByID(claims.UserID)
		if err != nil || user.Role != role {
			return unauthorized(c, "insufficient permissions")
		}

		c.Locals(LocalsUser, user)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
	})
}
