package middleware

import (
	"strings"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"
	"go-pos-inventory/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

const actorKey = "actor"

// RequireAuth validates the bearer token, re-checks the account against the
// database (inactive or deleted users lose access immediately) and stores
// the acting identity in the request context.
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}
		if !user.IsActive {
			return c.Status(403).JSON(fiber.Map{"error": "Account is inactive or deleted"})
		}

		c.Locals(actorKey, model.Actor{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
		})
		return c.Next()
	}
}

// RequireRole gates a route to the given operator roles.
func RequireRole(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := c.Locals(actorKey).(model.Actor)
		if !ok {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}
		for _, role := range roles {
			if actor.Role == role {
				return c.Next()
			}
		}
		return c.Status(403).JSON(fiber.Map{"error": "Forbidden: insufficient permissions"})
	}
}

// ActorFromContext returns the authenticated actor stored by RequireAuth.
func ActorFromContext(c *fiber.Ctx) (model.Actor, bool) {
	actor, ok := c.Locals(actorKey).(model.Actor)
	return actor, ok
}
