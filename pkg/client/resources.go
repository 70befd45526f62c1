package client

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
)

// Cache key prefixes per resource.
const (
	keyUser          = "/api/auth/user"
	keyCategories    = "/api/categories"
	keyProducts      = "/api/products"
	keyVendorProduct = "/api/vendor/products"
	keyVendorStats   = "/api/vendor/stats"
	keyCart          = "/api/cart"
	keyFavorites     = "/api/favorites"
	keyOrders        = "/api/orders"
	keySubscriptions = "/api/subscriptions"
)

// --- Auth ---

// Login exchanges the client's token for the stored user and clears the
// cache.
func (c *Client) Login(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.send(ctx, "POST", "/api/login", nil, &user, ""); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, keyUser, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser changes the caller's profile.
func (c *Client) UpdateUser(ctx context.Context, req models.UpdateUserRequest) (*models.User, error) {
	var user models.User
	if err := c.send(ctx, "PATCH", keyUser, req, &user, keyUser); err != nil {
		return nil, err
	}
	return &user, nil
}

// --- Catalog ---

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := c.get(ctx, keyCategories, nil, &categories)
	return categories, err
}

func (c *Client) CreateCategory(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error) {
	var category models.Category
	if err := c.send(ctx, "POST", keyCategories, req, &category, keyCategories); err != nil {
		return nil, err
	}
	return &category, nil
}

// ProductQuery mirrors the product list filters. A nil IsActive lists only
// active products; AllStates lists every product.
type ProductQuery struct {
	CategoryID string
	VendorID   string
	Search     string
	Tags       []string
	Dietary    []string
	IsActive   *bool
	AllStates  bool
}

func (q ProductQuery) values() url.Values {
	v := url.Values{}
	if q.CategoryID != "" {
		v.Set("categoryId", q.CategoryID)
	}
	if q.VendorID != "" {
		v.Set("vendorId", q.VendorID)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if len(q.Tags) > 0 {
		v.Set("tags", strings.Join(q.Tags, ","))
	}
	if len(q.Dietary) > 0 {
		v.Set("dietary", strings.Join(q.Dietary, ","))
	}
	switch {
	case q.AllStates:
		v.Set("isActive", "all")
	case q.IsActive != nil:
		v.Set("isActive", strconv.FormatBool(*q.IsActive))
	}
	return v
}

func (c *Client) Products(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	var products []models.Product
	err := c.get(ctx, keyProducts, q.values(), &products)
	return products, err
}

func (c *Client) Product(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := c.get(ctx, keyProducts+"/"+url.PathEscape(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) VendorProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := c.get(ctx, keyVendorProduct, nil, &products)
	return products, err
}

// Product changes show up embedded in carts and favorites too.
var productKeys = []string{keyProducts, keyVendorProduct, keyVendorStats, keyCart, keyFavorites}

func (c *Client) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	var product models.Product
	if err := c.send(ctx, "POST", keyProducts, in, &product, productKeys...); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, in models.ProductInput) (*models.Product, error) {
	var product models.Product
	if err := c.send(ctx, "PUT", keyProducts+"/"+url.PathEscape(id), in, &product, productKeys...); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.send(ctx, "DELETE", keyProducts+"/"+url.PathEscape(id), nil, nil, productKeys...)
}

func (c *Client) Reviews(ctx context.Context, productID string) ([]models.Review, error) {
	var reviews []models.Review
	err := c.get(ctx, reviewsPath(productID), nil, &reviews)
	return reviews, err
}

func (c *Client) CreateReview(ctx context.Context, productID string, req models.CreateReviewRequest) (*models.Review, error) {
	var review models.Review
	if err := c.send(ctx, "POST", reviewsPath(productID), req, &review, reviewsPath(productID), keyVendorStats); err != nil {
		return nil, err
	}
	return &review, nil
}

func reviewsPath(productID string) string {
	return keyProducts + "/" + url.PathEscape(productID) + "/reviews"
}

func (c *Client) VendorStats(ctx context.Context) (*models.VendorStats, error) {
	var stats models.VendorStats
	if err := c.get(ctx, keyVendorStats, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// --- Cart ---

func (c *Client) Cart(ctx context.Context) ([]models.CartItem, error) {
	var items []models.CartItem
	err := c.get(ctx, keyCart, nil, &items)
	return items, err
}

func (c *Client) AddToCart(ctx context.Context, req models.AddToCartRequest) (*models.CartItem, error) {
	var item models.CartItem
	if err := c.send(ctx, "POST", keyCart, req, &item, keyCart); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateCartItem(ctx context.Context, id string, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	req := models.UpdateCartItemRequest{Quantity: quantity}
	if err := c.send(ctx, "PUT", keyCart+"/"+url.PathEscape(id), req, &item, keyCart); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) RemoveCartItem(ctx context.Context, id string) error {
	return c.send(ctx, "DELETE", keyCart+"/"+url.PathEscape(id), nil, nil, keyCart)
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.send(ctx, "DELETE", keyCart, nil, nil, keyCart)
}

// --- Favorites ---

func (c *Client) Favorites(ctx context.Context) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := c.get(ctx, keyFavorites, nil, &favorites)
	return favorites, err
}

func (c *Client) AddFavorite(ctx context.Context, productID string) (*models.Favorite, error) {
	var favorite models.Favorite
	req := models.FavoriteRequest{ProductID: productID}
	if err := c.send(ctx, "POST", keyFavorites, req, &favorite, keyFavorites); err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (c *Client) RemoveFavorite(ctx context.Context, productID string) error {
	return c.send(ctx, "DELETE", keyFavorites+"/"+url.PathEscape(productID), nil, nil, keyFavorites)
}

func (c *Client) IsFavorite(ctx context.Context, productID string) (bool, error) {
	var body struct {
		IsFavorite bool `json:"isFavorite"`
	}
	err := c.get(ctx, keyFavorites+"/"+url.PathEscape(productID)+"/check", nil, &body)
	return body.IsFavorite, err
}

// --- Orders ---

func (c *Client) Orders(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	var query url.Values
	if status != "" {
		query = url.Values{"status": {string(status)}}
	}
	var orders []models.Order
	err := c.get(ctx, keyOrders, query, &orders)
	return orders, err
}

func (c *Client) Order(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := c.get(ctx, keyOrders+"/"+url.PathEscape(id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder also empties the cart on the server.
func (c *Client) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.send(ctx, "POST", keyOrders, req, &order, keyOrders, keyCart, keyVendorStats); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	req := models.UpdateOrderStatusRequest{Status: status}
	if err := c.send(ctx, "PATCH", keyOrders+"/"+url.PathEscape(id)+"/status", req, &order, keyOrders, keyVendorStats); err != nil {
		return nil, err
	}
	return &order, nil
}

// --- Subscriptions ---

func (c *Client) Subscriptions(ctx context.Context, isActive *bool) ([]models.Subscription, error) {
	var query url.Values
	if isActive != nil {
		query = url.Values{"isActive": {strconv.FormatBool(*isActive)}}
	}
	var subs []models.Subscription
	err := c.get(ctx, keySubscriptions, query, &subs)
	return subs, err
}

func (c *Client) CreateSubscription(ctx context.Context, req models.CreateSubscriptionRequest) (*models.Subscription, error) {
	var sub models.Subscription
	if err := c.send(ctx, "POST", keySubscriptions, req, &sub, keySubscriptions); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (c *Client) UpdateSubscription(ctx context.Context, id string, req models.UpdateSubscriptionRequest) (*models.Subscription, error) {
	var sub models.Subscription
	if err := c.send(ctx, "PUT", keySubscriptions+"/"+url.PathEscape(id), req, &sub, keySubscriptions); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (c *Client) CancelSubscription(ctx context.Context, id string) error {
	return c.send(ctx, "DELETE", keySubscriptions+"/"+url.PathEscape(id), nil, nil, keySubscriptions)
}
