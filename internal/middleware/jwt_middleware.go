package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/apperrors"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/services"
)

const callerKey = "caller"

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header.
func BearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", apperrors.Unauthenticated("Authorization header is required")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", apperrors.Unauthenticated("Authorization header format must be 'Bearer <token>'")
	}
	return strings.TrimSpace(parts[1]), nil
}

// AuthRequired is a Fiber middleware that resolves the bearer token to a
// known user and stores the caller in the context for later handlers.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := BearerToken(c)
		if err != nil {
			return err
		}

		caller, err := authService.Authenticate(c.UserContext(), tokenString)
		if err != nil {
			return err
		}

		c.Locals(callerKey, caller)
		return c.Next()
	}
}

// CallerFrom returns the caller stored by AuthRequired. It fails with
// Unauthenticated on routes that were not wrapped by the middleware.
func CallerFrom(c *fiber.Ctx) (models.Caller, error) {
	caller, ok := c.Locals(callerKey).(models.Caller)
	if !ok || caller.ID == "" {
		return models.Caller{}, apperrors.Unauthenticated("Authentication required")
	}
	return caller, nil
}
