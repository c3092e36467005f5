package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sweetdreamlabs/sweetdream/internal/cache"
	"github.com/sweetdreamlabs/sweetdream/internal/httperr"
	"github.com/sweetdreamlabs/sweetdream/internal/httpresp"
	"github.com/sweetdreamlabs/sweetdream/internal/models"
	"github.com/sweetdreamlabs/sweetdream/internal/validators"
)

type CategoryHandler struct {
	db    *gorm.DB
	cache *cache.Store
}

func NewCategoryHandler(db *gorm.DB, store *cache.Store) *CategoryHandler {
	return &CategoryHandler{db: db, cache: store}
}

// --------- Requests ---------

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

type categoryRow struct {
	models.Category
	ProductsCount int64 `json:"productsCount"`
}

// --------- Handlers ---------

func (h *CategoryHandler) List(c *gin.Context) {
	var categories []categoryRow
	err := h.db.Model(&models.Category{}).
		Select("categories.*, (SELECT COUNT(*) FROM products WHERE products.category_id = categories.id) AS products_count").
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	httpresp.OK(c, categories)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	var category models.Category
	err := h.db.
		Preload("Products").
		Preload("Products.Sizes", func(db *gorm.DB) *gorm.DB {
			return db.Order("price ASC")
		}).
		First(&category, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
		return
	}

	httpresp.OK(c, category)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.ValidationFailed(c, validators.Details(err))
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.db.Create(&category).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Category name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	h.cache.Invalidate(c.Request.Context())
	httpresp.Created(c, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.ValidationFailed(c, validators.Details(err))
		return
	}

	var category models.Category
	if err := h.db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	category.Name = req.Name
	category.Description = req.Description

	if err := h.db.Save(&category).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Category name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	h.cache.Invalidate(c.Request.Context())
	httpresp.OK(c, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	var category models.Category
	if err := h.db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	var products int64
	h.db.Model(&models.Product{}).Where("category_id = ?", category.ID).Count(&products)
	if products > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete category with existing products"})
		return
	}

	if err := h.db.Delete(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	h.cache.Invalidate(c.Request.Context())
	c.Status(http.StatusNoContent)
}
