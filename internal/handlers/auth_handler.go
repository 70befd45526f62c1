package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/middleware"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/services"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	router.Post("/login", h.HandleLogin)
	router.Post("/logout", h.HandleLogout)
	router.Get("/auth/user", requireAuth, h.HandleGetUser)
	router.Patch("/auth/user", requireAuth, h.HandleUpdateUser)
}

// HandleLogin accepts an identity-provider token and creates or refreshes
// the matching user.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	tokenString, err := middleware.BearerToken(c)
	if err != nil {
		return err
	}
	identity, err := h.authService.ValidateToken(tokenString)
	if err != nil {
		return err
	}

	user, err := h.authService.Login(c.UserContext(), identity)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// HandleLogout exists for clients that expect it. Tokens are stateless.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) HandleGetUser(c *fiber.Ctx) error {
	caller, err := middleware.CallerFrom(c)
	if err != nil {
		return err
	}
	user, err := h.authService.CurrentUser(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *AuthHandler) HandleUpdateUser(c *fiber.Ctx) error {
	caller, err := middleware.CallerFrom(c)
	if err != nil {
		return err
	}
	var req models.UpdateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.authService.UpdateProfile(c.UserContext(), caller, req)
	if err != nil {
		return err
	}
	return c.JSON(user)
}
