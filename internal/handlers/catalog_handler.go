package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/middleware"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/services"
)

// CategoryHandler serves categories. Listing is public.
type CategoryHandler struct {
	service *services.CategoryService
}

func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	router.Get("/categories", h.HandleGetCategories)
	router.Post("/categories", requireAuth, h.HandleCreateCategory)
}

func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	caller, err := middleware.CallerFrom(c)
	if err != nil {
		return err
	}
	var req models.CreateCategoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	category, err := h.service.CreateCategory(c.UserContext(), caller, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// ReviewHandler serves product reviews. Listing is public.
type ReviewHandler struct {
	service *services.ReviewService
}

func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

func (h *ReviewHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	router.Get("/products/:id/reviews", h.HandleGetReviews)
	router.Post("/products/:id/reviews", requireAuth, h.HandleCreateReview)
}

func (h *ReviewHandler) HandleGetReviews(c *fiber.Ctx) error {
	reviews, err := h.service.ListReviews(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(reviews)
}

func (h *ReviewHandler) HandleCreateReview(c *fiber.Ctx) error {
	caller, err := middleware.CallerFrom(c)
	if err != nil {
		return err
	}
	var req models.CreateReviewRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	review, err := h.service.CreateReview(c.UserContext(), caller, c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// VendorHandler serves the vendor dashboard statistics.
type VendorHandler struct {
	service *services.VendorService
}

func NewVendorHandler(service *services.VendorService) *VendorHandler {
	return &VendorHandler{service: service}
}

func (h *VendorHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	router.Get("/vendor/stats", requireAuth, h.HandleGetStats)
}

func (h *VendorHandler) HandleGetStats(c *fiber.Ctx) error {
	caller, err := middleware.CallerFrom(c)
	if err != nil {
		return err
	}
	stats, err := h.service.Stats(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
