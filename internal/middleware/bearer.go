package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mergington/school-activities/internal/token"
)

// UserEmailKey is the request-local key holding the authenticated email.
const UserEmailKey = "user_email"

// BearerAuth returns a middleware that verifies bearer tokens and stores the
// subject email in request locals. The account is not re-checked against the
// identity store: a token stays valid until its expiry.
func BearerAuth(tokens *token.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])
		email, err := tokens.Verify(tokenStr)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(UserEmailKey, email)
		return c.Next()
	}
}
