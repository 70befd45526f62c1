// Package server wires repositories, services and handlers into a fiber app.
package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/database"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/handlers"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/middleware"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/repositories"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/services"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/storage"
)

// Deps are the external resources the API runs on. Publisher and Images may
// be nil.
type Deps struct {
	DB        *gorm.DB
	Logger    *logrus.Logger
	JWTSecret string
	Publisher services.EventPublisher
	Images    *storage.ImageStore
	// AccessLog enables fiber's request logger.
	AccessLog bool
}

// Server is the assembled API.
type Server struct {
	App        *fiber.App
	Auth       *services.AuthService
	Categories *services.CategoryService
}

// New builds the fiber app with every route mounted under /api.
func New(deps Deps) *Server {
	log := deps.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(deps.DB)
	categoryRepo := repositories.NewGORMCategoryRepository(deps.DB)
	productRepo := repositories.NewGORMProductRepository(deps.DB)
	cartRepo := repositories.NewGORMCartRepository(deps.DB)
	favoriteRepo := repositories.NewGORMFavoriteRepository(deps.DB)
	orderRepo := repositories.NewGORMOrderRepository(deps.DB)
	subscriptionRepo := repositories.NewGORMSubscriptionRepository(deps.DB)
	reviewRepo := repositories.NewGORMReviewRepository(deps.DB)
	statsRepo := repositories.NewGORMStatsRepository(deps.DB)
	txManager := repositories.NewTransactionManager(deps.DB)

	// --- Services ---
	authService := services.NewAuthService(userRepo, deps.JWTSecret, log)
	categoryService := services.NewCategoryService(categoryRepo)
	productService := services.NewProductService(productRepo, categoryRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	favoriteService := services.NewFavoriteService(favoriteRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, txManager, deps.Publisher, log)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo)
	reviewService := services.NewReviewService(reviewRepo, productRepo)
	vendorService := services.NewVendorService(statsRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(log),
		BodyLimit:    10 * 1024 * 1024,
	})

	// --- Middleware ---
	app.Use(recover.New())
	if deps.AccessLog {
		app.Use(fiberlogger.New(fiberlogger.Config{Output: log.Out}))
	}

	app.Get("/health", healthHandler(deps.DB))
	if deps.Images != nil {
		app.Static(storage.URLPrefix, deps.Images.Dir)
	}

	// --- API Routes ---
	api := app.Group("/api")
	requireAuth := middleware.AuthRequired(authService)

	handlers.NewAuthHandler(authService).RegisterRoutes(api, requireAuth)
	handlers.NewCategoryHandler(categoryService).RegisterRoutes(api, requireAuth)
	handlers.NewReviewHandler(reviewService).RegisterRoutes(api, requireAuth)
	handlers.NewProductHandler(productService, deps.Images).RegisterRoutes(api, requireAuth)
	handlers.NewVendorHandler(vendorService).RegisterRoutes(api, requireAuth)
	handlers.NewCartHandler(cartService).RegisterRoutes(api, requireAuth)
	handlers.NewFavoriteHandler(favoriteService).RegisterRoutes(api, requireAuth)
	handlers.NewOrderHandler(orderService).RegisterRoutes(api, requireAuth)
	handlers.NewSubscriptionHandler(subscriptionService).RegisterRoutes(api, requireAuth)

	return &Server{
		App:        app,
		Auth:       authService,
		Categories: categoryService,
	}
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		status, dbStatus, code := "healthy", "up", fiber.StatusOK
		if err := database.Ping(ctx, db); err != nil {
			status, dbStatus, code = "degraded", "down", fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"time":     time.Now().Format(time.RFC3339),
			"database": dbStatus,
		})
	}
}
