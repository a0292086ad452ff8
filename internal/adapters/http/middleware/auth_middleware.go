package middleware

import (
	"errors"
	"strings"

	"campus-inventory/internal/config"
	"campus-inventory/internal/pkg/jwt"
	"campus-inventory/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by AdminAuth
const (
	LocalAdminID  = "adminID"
	LocalUsername = "username"
)

// AdminAuth requires a valid admin access token
func AdminAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := tokenFromRequest(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals(LocalAdminID, claims.AdminID)
		c.Locals(LocalUsername, claims.Username)

		return c.Next()
	}
}

// tokenFromRequest reads the access token from the cookie, then the Authorization header
func tokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies("access_token"); token != "" {
		return token
	}

	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
