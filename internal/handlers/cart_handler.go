package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sweetdreamlabs/sweetdream/internal/analytics"
	"github.com/sweetdreamlabs/sweetdream/internal/httperr"
	"github.com/sweetdreamlabs/sweetdream/internal/middleware"
	"github.com/sweetdreamlabs/sweetdream/internal/models"
	"github.com/sweetdreamlabs/sweetdream/internal/validators"
)

type CartHandler struct {
	db        *gorm.DB
	analytics *analytics.Dispatcher
}

func NewCartHandler(db *gorm.DB, dispatcher *analytics.Dispatcher) *CartHandler {
	return &CartHandler{db: db, analytics: dispatcher}
}

// --------- Requests ---------

type AddCartItemRequest struct {
	ProductID uint    `json:"productId" binding:"required"`
	Size      string  `json:"size" binding:"required,max=20"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Price     float64 `json:"price" binding:"required,gt=0"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// --------- Handlers ---------

func (h *CartHandler) Get(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextCustomerID).(uint)

	cart, err := h.getOrCreateCart(customerID, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextCustomerID).(uint)

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.ValidationFailed(c, validators.Details(err))
		return
	}

	var product models.Product
	if err := h.db.Preload("Category").First(&product, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to cart"})
		return
	}

	cart, err := h.getOrCreateCart(customerID, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to cart"})
		return
	}

	// Same product+size in the cart merges quantities instead of
	// duplicating the line.
	var item models.CartItem
	err = h.db.
		Where("cart_id = ? AND product_id = ? AND size = ?", cart.ID, req.ProductID, req.Size).
		First(&item).Error

	switch {
	case err == nil:
		item.Quantity += req.Quantity
		if err := h.db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to cart"})
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{
			CartID:    cart.ID,
			ProductID: req.ProductID,
			Size:      req.Size,
			Quantity:  req.Quantity,
			Price:     decimal.NewFromFloat(req.Price),
		}
		if err := h.db.Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to cart"})
			return
		}
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to cart"})
		return
	}

	var customer models.Customer
	h.db.First(&customer, customerID)

	h.analytics.Dispatch(analytics.AddToCartEvent{
		CustomerID:   customerID,
		CustomerName: customer.Name,
		SessionID:    c.GetHeader("X-Session-Id"),
		ProductID:    product.ID,
		ProductName:  product.Name,
		Category:     product.Category.Name,
		Size:         req.Size,
		Quantity:     req.Quantity,
		Price:        decimal.NewFromFloat(req.Price),
	})

	item.Product = product
	c.JSON(http.StatusOK, item)
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextCustomerID).(uint)

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.ValidationFailed(c, validators.Details(err))
		return
	}

	item, ok := h.ownedItem(c, customerID)
	if !ok {
		return
	}

	item.Quantity = req.Quantity
	if err := h.db.Save(item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextCustomerID).(uint)

	item, ok := h.ownedItem(c, customerID)
	if !ok {
		return
	}

	if err := h.db.Delete(item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}

func (h *CartHandler) Clear(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextCustomerID).(uint)

	var cart models.Cart
	err := h.db.Where("customer_id = ?", customerID).First(&cart).Error
	if err == nil {
		if err := h.db.Where("cart_id = ?", cart.ID).
			Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

// --------- Helpers ---------

func (h *CartHandler) getOrCreateCart(customerID uint, preload bool) (*models.Cart, error) {
	q := h.db
	if preload {
		q = q.
			Preload("Items").
			Preload("Items.Product").
			Preload("Items.Product.Category").
			Preload("Items.Product.Sizes")
	}

	var cart models.Cart
	err := q.Where("customer_id = ?", customerID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{CustomerID: customerID, Items: []models.CartItem{}}
	if err := h.db.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// ownedItem loads a cart item by path id and checks it belongs to the
// caller's cart.
func (h *CartHandler) ownedItem(c *gin.Context, customerID uint) (*models.CartItem, bool) {
	var item models.CartItem
	err := h.db.
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.customer_id = ?", c.Param("id"), customerID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
		}
		return nil, false
	}
	return &item, true
}
