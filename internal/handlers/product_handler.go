package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sweetdreamlabs/sweetdream/internal/cache"
	"github.com/sweetdreamlabs/sweetdream/internal/httperr"
	"github.com/sweetdreamlabs/sweetdream/internal/httpresp"
	"github.com/sweetdreamlabs/sweetdream/internal/models"
	"github.com/sweetdreamlabs/sweetdream/internal/validators"
)

type ProductHandler struct {
	db    *gorm.DB
	cache *cache.Store
}

func NewProductHandler(db *gorm.DB, store *cache.Store) *ProductHandler {
	return &ProductHandler{db: db, cache: store}
}

// --------- Requests ---------

type ProductSizeRequest struct {
	Size  string  `json:"size" binding:"required,max=20"`
	Price float64 `json:"price" binding:"required,gt=0"`
}

type ProductRequest struct {
	Name        string               `json:"name" binding:"required,max=200"`
	Description string               `json:"description" binding:"omitempty,max=1000"`
	Img         string               `json:"img" binding:"required,url"`
	CategoryID  uint                 `json:"categoryId" binding:"required"`
	Sizes       []ProductSizeRequest `json:"sizes" binding:"required,min=1,dive"`
}

// --------- Handlers ---------

func (h *ProductHandler) List(c *gin.Context) {
	var products []models.Product
	err := h.db.
		Preload("Category").
		Preload("Sizes", sizesByPrice).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	httpresp.OK(c, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	var product models.Product
	err := h.db.
		Preload("Category").
		Preload("Sizes", sizesByPrice).
		First(&product, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	httpresp.OK(c, product)
}

func (h *ProductHandler) ListByCategory(c *gin.Context) {
	var products []models.Product
	err := h.db.
		Preload("Category").
		Preload("Sizes", sizesByPrice).
		Where("category_id = ?", c.Param("categoryId")).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	httpresp.OK(c, products)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.ValidationFailed(c, validators.Details(err))
		return
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Img:         req.Img,
		CategoryID:  req.CategoryID,
		Sizes:       toSizes(req.Sizes),
	}

	if err := h.db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	h.db.Preload("Category").Preload("Sizes").First(&product, product.ID)

	h.cache.Invalidate(c.Request.Context())
	httpresp.Created(c, product)
}

// Update replaces the size variants wholesale, matching how the admin
// console edits products.
func (h *ProductHandler) Update(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.ValidationFailed(c, validators.Details(err))
		return
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).
			Delete(&models.ProductSize{}).Error; err != nil {
			return err
		}

		product.Name = req.Name
		product.Description = req.Description
		product.Img = req.Img
		product.CategoryID = req.CategoryID
		product.Sizes = toSizes(req.Sizes)

		return tx.Save(&product).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	h.db.Preload("Category").Preload("Sizes", sizesByPrice).First(&product, product.ID)

	h.cache.Invalidate(c.Request.Context())
	httpresp.OK(c, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	var product models.Product
	if err := h.db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	// Orders keep price snapshots by product reference; deleting the
	// product would orphan them.
	var lines int64
	h.db.Model(&models.OrderItem{}).Where("product_id = ?", product.ID).Count(&lines)
	if lines > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete product referenced by existing orders"})
		return
	}

	if err := h.db.Select("Sizes").Delete(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	h.cache.Invalidate(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func sizesByPrice(db *gorm.DB) *gorm.DB {
	return db.Order("price ASC")
}

func toSizes(reqs []ProductSizeRequest) []models.ProductSize {
	sizes := make([]models.ProductSize, 0, len(reqs))
	for _, s := range reqs {
		sizes = append(sizes, models.ProductSize{
			Size:  s.Size,
			Price: decimal.NewFromFloat(s.Price),
		})
	}
	return sizes
}
