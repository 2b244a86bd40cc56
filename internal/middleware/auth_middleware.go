package middleware

import (
	"strings"

	"quizdeck/internal/domain"
	"quizdeck/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID" // Key for storing UserID in fiber.Ctx locals
	UserRoleKey         = "userRole"
)

// Protected requires a valid bearer token. The token's user must still exist;
// the user id and role are stored in the request locals for handlers.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" || !strings.HasPrefix(authHeader, BearerSchema) {
			return domain.NewUnauthorizedError("Please authenticate")
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return domain.NewUnauthorizedError("Please authenticate")
		}

		user, err := authService.ValidateToken(c.Context(), tokenString)
		if err != nil {
			return err
		}

		c.Locals(UserIDKey, user.ID)
		c.Locals(UserRoleKey, string(user.Role))

		return c.Next()
	}
}

// FacultyOnly rejects requests whose authenticated user is not faculty. It
// must run after Protected.
func FacultyOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(UserRoleKey).(string)
		if domain.Role(role) != domain.RoleFaculty {
			return domain.NewForbiddenError("Faculty access required")
		}
		return c.Next()
	}
}

// AuthenticatedUserID returns the user id stored by Protected.
func AuthenticatedUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}
