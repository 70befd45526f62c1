package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/middleware"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/services"
)

type SubscriptionHandler struct {
	service *services.SubscriptionService
}

func NewSubscriptionHandler(service *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

func (h *SubscriptionHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	subRoutes := router.Group("/subscriptions", requireAuth)
	subRoutes.Get("/", h.HandleGetSubscriptions)
	subRoutes.Post("/", h.HandleCreateSubscription)
	subRoutes.Put("/:id", h.HandleUpdateSubscription)
	subRoutes.Delete("/:id", h.HandleCancelSubscription)
}

// HandleGetSubscriptions lists both active and cancelled subscriptions
// unless ?isActive= narrows them.
func (h *SubscriptionHandler) HandleGetSubscriptions(c *fiber.Ctx) error {
	caller, err := middleware.CallerFrom(c)
	if err != nil {
		return err
	}
	isActive, err := queryBool(c, "isActive", nil)
	if err != nil {
		return err
	}

	subs, err := h.service.ListSubscriptions(c.UserContext(), caller, isActive)
	if err != nil {
		return err
	}
	return c.JSON(subs)
}

func (h *SubscriptionHandler) HandleCreateSubscription(c *fiber.Ctx) error {
	caller, err := middleware.CallerFrom(c)
	if err != nil {
		return err
	}
	var req models.CreateSubscriptionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	sub, err := h.service.CreateSubscription(c.UserContext(), caller, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(sub)
}

func (h *SubscriptionHandler) HandleUpdateSubscription(c *fiber.Ctx) error {
	caller, err := middleware.CallerFrom(c)
	if err != nil {
		return err
	}
	var req models.UpdateSubscriptionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	sub, err := h.service.UpdateSubscription(c.UserContext(), caller, c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(sub)
}

// HandleCancelSubscription deactivates the subscription; it stays listed.
func (h *SubscriptionHandler) HandleCancelSubscription(c *fiber.Ctx) error {
	caller, err := middleware.CallerFrom(c)
	if err != nil {
		return err
	}
	if err := h.service.CancelSubscription(c.UserContext(), caller, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
