package handlers

import (
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/apperrors"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/middleware"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/services"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/storage"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	images  *storage.ImageStore
}

// NewProductHandler creates a new ProductHandler. images may be nil, in
// which case uploads are rejected.
func NewProductHandler(service *services.ProductService, images *storage.ImageStore) *ProductHandler {
	return &ProductHandler{
		service: service,
		images:  images,
	}
}

// RegisterRoutes registers the product routes. Reads are public.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", requireAuth, h.HandleCreateProduct)
	productRoutes.Put("/:id", requireAuth, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", requireAuth, h.HandleDeleteProduct)

	router.Get("/vendor/products", requireAuth, h.HandleGetVendorProducts)
}

// HandleGetProducts lists products. Without an isActive parameter only
// active products are returned; isActive=all lifts the constraint.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	active := true
	isActive, err := queryBool(c, "isActive", &active)
	if err != nil {
		return err
	}

	filter := models.ProductFilter{
		CategoryID: c.Query("categoryId"),
		VendorID:   c.Query("vendorId"),
		Search:     strings.TrimSpace(c.Query("search")),
		Tags:       splitList(queryValues(c, "tags")...),
		Dietary:    splitList(queryValues(c, "dietary")...),
		IsActive:   isActive,
	}

	products, err := h.service.ListProducts(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleGetVendorProducts lists every product of the calling vendor.
func (h *ProductHandler) HandleGetVendorProducts(c *fiber.Ctx) error {
	caller, err := middleware.CallerFrom(c)
	if err != nil {
		return err
	}
	products, err := h.service.ListVendorProducts(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleCreateProduct accepts JSON or multipart/form-data with an optional
// "image" file.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	caller, err := middleware.CallerFrom(c)
	if err != nil {
		return err
	}
	if !caller.IsVendor() {
		return apperrors.Forbidden("Only vendors can create products")
	}

	input, uploaded, err := h.parseProductInput(c)
	if err != nil {
		return err
	}

	product, err := h.service.CreateProduct(c.UserContext(), caller, input)
	if err != nil {
		h.discardUpload(uploaded)
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct patches a product owned by the caller.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	caller, err := middleware.CallerFrom(c)
	if err != nil {
		return err
	}
	id := c.Params("id")
	if err := h.service.CheckOwnership(c.UserContext(), caller, id); err != nil {
		return err
	}

	input, uploaded, err := h.parseProductInput(c)
	if err != nil {
		return err
	}

	product, err := h.service.UpdateProduct(c.UserContext(), caller, id, input)
	if err != nil {
		h.discardUpload(uploaded)
		return err
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product owned by the caller.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	caller, err := middleware.CallerFrom(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteProduct(c.UserContext(), caller, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// discardUpload removes an image stored for a request the service rejected.
func (h *ProductHandler) discardUpload(url string) {
	if url == "" || h.images == nil {
		return
	}
	h.images.Remove(url)
}

// parseProductInput reads JSON or multipart input and validates it. An
// uploaded image is stored only once the other fields are valid, and its
// URL is returned so the caller can drop it if the write fails.
func (h *ProductHandler) parseProductInput(c *fiber.Ctx) (models.ProductInput, string, error) {
	var input models.ProductInput
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		if err := c.BodyParser(&input); err != nil {
			return input, "", apperrors.Validation("Invalid request body", map[string]string{"body": err.Error()})
		}
		return input, "", validateStruct(input)
	}

	input, image, err := h.parseProductForm(c)
	if err != nil {
		return input, "", err
	}
	if err := validateStruct(input); err != nil {
		return input, "", err
	}
	if image == nil {
		return input, "", nil
	}
	if h.images == nil {
		return input, "", apperrors.Validation("Validation failed", map[string]string{"image": "Image uploads are disabled"})
	}
	url, err := h.images.Save(image)
	if err != nil {
		return input, "", err
	}
	input.ImageURL = &url
	return input, url, nil
}

// parseProductForm reads product fields from a multipart form. Tags and
// dietary labels are comma separated.
func (h *ProductHandler) parseProductForm(c *fiber.Ctx) (models.ProductInput, *multipart.FileHeader, error) {
	var input models.ProductInput
	form, err := c.MultipartForm()
	if err != nil {
		return input, nil, apperrors.Validation("Invalid multipart form", map[string]string{"body": err.Error()})
	}

	value := func(key string) (string, bool) {
		vs := form.Value[key]
		if len(vs) == 0 {
			return "", false
		}
		return strings.TrimSpace(vs[0]), true
	}
	invalid := func(key, msg string) error {
		return apperrors.Validation("Validation failed", map[string]string{key: msg})
	}

	if v, ok := value("name"); ok {
		input.Name = &v
	}
	if v, ok := value("description"); ok {
		input.Description = &v
	}
	if v, ok := value("price"); ok {
		price, err := decimal.NewFromString(v)
		if err != nil {
			return input, nil, invalid("price", "Field 'price' must be a decimal number")
		}
		input.Price = &price
	}
	if v, ok := value("categoryId"); ok && v != "" {
		input.CategoryID = &v
	}
	if v, ok := value("stock"); ok {
		stock, err := strconv.Atoi(v)
		if err != nil {
			return input, nil, invalid("stock", "Field 'stock' must be an integer")
		}
		input.Stock = &stock
	}
	if v, ok := value("isActive"); ok {
		active, err := strconv.ParseBool(v)
		if err != nil {
			return input, nil, invalid("isActive", "Field 'isActive' must be a boolean")
		}
		input.IsActive = &active
	}
	if v, ok := value("prepTimeMinutes"); ok && v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil {
			return input, nil, invalid("prepTimeMinutes", "Field 'prepTimeMinutes' must be an integer")
		}
		input.PrepTimeMinutes = &minutes
	}
	if vs, ok := form.Value["tags"]; ok {
		input.Tags = append([]string{}, splitList(vs...)...)
	}
	if vs, ok := form.Value["dietary"]; ok {
		input.Dietary = append([]string{}, splitList(vs...)...)
	}

	var image *multipart.FileHeader
	if files := form.File["image"]; len(files) > 0 {
		image = files[0]
	}
	return input, image, nil
}
