package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/api/v1/auth")

	auth.Post("/login", LoginAPI)
	auth.Post("/logout", LogoutAPI)
}

// AuthMiddleware validates the JWT and sets the manager identity on the
// request context. Every data endpoint sits behind it.
func AuthMiddleware(c *fiber.Ctx) error {
	// Get JWT token from cookie or Authorization header
	tokenString := c.Cookies("jwt_token")

	if tokenString == "" {
		header := c.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		}
	}

	if tokenString == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	c.Locals("manager_id", claims.ManagerID)
	c.Locals("manager_email", claims.Email)

	return c.Next()
}
