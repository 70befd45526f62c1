package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/middleware"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/services"
)

// CartHandler handles HTTP requests for the caller's cart.
type CartHandler struct {
	service *services.CartService
}

func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{service: service}
}

func (h *CartHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	cartRoutes := router.Group("/cart", requireAuth)
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleAddToCart)
	cartRoutes.Put("/:id", h.HandleUpdateCartItem)
	cartRoutes.Delete("/:id", h.HandleRemoveCartItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	caller, err := middleware.CallerFrom(c)
	if err != nil {
		return err
	}
	items, err := h.service.GetCart(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// HandleAddToCart merges into an existing line for the same product.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	caller, err := middleware.CallerFrom(c)
	if err != nil {
		return err
	}
	var req models.AddToCartRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	item, err := h.service.AddToCart(c.UserContext(), caller, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *CartHandler) HandleUpdateCartItem(c *fiber.Ctx) error {
	caller, err := middleware.CallerFrom(c)
	if err != nil {
		return err
	}
	var req models.UpdateCartItemRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	item, err := h.service.UpdateQuantity(c.UserContext(), caller, c.Params("id"), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(item)
}

func (h *CartHandler) HandleRemoveCartItem(c *fiber.Ctx) error {
	caller, err := middleware.CallerFrom(c)
	if err != nil {
		return err
	}
	if err := h.service.RemoveItem(c.UserContext(), caller, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	caller, err := middleware.CallerFrom(c)
	if err != nil {
		return err
	}
	if err := h.service.ClearCart(c.UserContext(), caller); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// FavoriteHandler handles HTTP requests for the caller's favorites.
type FavoriteHandler struct {
	service *services.FavoriteService
}

func NewFavoriteHandler(service *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

func (h *FavoriteHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	favoriteRoutes := router.Group("/favorites", requireAuth)
	favoriteRoutes.Get("/", h.HandleGetFavorites)
	favoriteRoutes.Post("/", h.HandleAddFavorite)
	favoriteRoutes.Get("/:productId/check", h.HandleCheckFavorite)
	favoriteRoutes.Delete("/:productId", h.HandleRemoveFavorite)
}

func (h *FavoriteHandler) HandleGetFavorites(c *fiber.Ctx) error {
	caller, err := middleware.CallerFrom(c)
	if err != nil {
		return err
	}
	favorites, err := h.service.GetFavorites(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return c.JSON(favorites)
}

func (h *FavoriteHandler) HandleAddFavorite(c *fiber.Ctx) error {
	caller, err := middleware.CallerFrom(c)
	if err != nil {
		return err
	}
	var req models.FavoriteRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	favorite, err := h.service.AddFavorite(c.UserContext(), caller, req.ProductID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(favorite)
}

func (h *FavoriteHandler) HandleRemoveFavorite(c *fiber.Ctx) error {
	caller, err := middleware.CallerFrom(c)
	if err != nil {
		return err
	}
	if err := h.service.RemoveFavorite(c.UserContext(), caller, c.Params("productId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *FavoriteHandler) HandleCheckFavorite(c *fiber.Ctx) error {
	caller, err := middleware.CallerFrom(c)
	if err != nil {
		return err
	}
	ok, err := h.service.IsFavorite(c.UserContext(), caller, c.Params("productId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"isFavorite": ok})
}
