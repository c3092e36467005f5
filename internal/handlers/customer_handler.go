package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sweetdreamlabs/sweetdream/internal/httperr"
	"github.com/sweetdreamlabs/sweetdream/internal/httpresp"
	"github.com/sweetdreamlabs/sweetdream/internal/models"
	"github.com/sweetdreamlabs/sweetdream/internal/validators"
)

type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

// --------- Requests ---------

type CustomerRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"omitempty,max=20"`
	Address string `json:"address" binding:"omitempty,max=500"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// customerRow carries the per-customer order count for the admin list.
type customerRow struct {
	models.Customer
	OrdersCount int64 `json:"ordersCount"`
}

// --------- Handlers ---------

func (h *CustomerHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}

	q := h.db.Model(&models.Customer{})
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	var customers []customerRow
	if err := q.
		Select("customers.*, (SELECT COUNT(*) FROM orders WHERE orders.customer_id = customers.id) AS orders_count").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	httpresp.OK(c, gin.H{
		"customers":  customers,
		"pagination": httpresp.NewPagination(page, limit, total),
	})
}

func (h *CustomerHandler) Get(c *gin.Context) {
	var customer models.Customer
	err := h.db.
		Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Order("orders.created_at DESC")
		}).
		Preload("Orders.Items").
		Preload("Orders.Items.Product").
		First(&customer, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customer"})
		return
	}

	httpresp.OK(c, customer)
}

// GetByEmail backs the order service's resolve-or-create: 404 here means
// "create one", not an error. Rows are stored lowercased, so the lookup
// normalizes the same way Create does.
func (h *CustomerHandler) GetByEmail(c *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(c.Param("email")))

	var customer models.Customer
	err := h.db.Where("email = ?", email).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customer"})
		return
	}

	httpresp.OK(c, customer)
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.ValidationFailed(c, validators.Details(err))
		return
	}

	customer := models.Customer{
		Name:    req.Name,
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   req.Phone,
		Address: req.Address,
		Role:    models.RoleCustomer,
	}

	if err := h.db.Create(&customer).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}

	httpresp.Created(c, customer)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.ValidationFailed(c, validators.Details(err))
		return
	}

	var customer models.Customer
	if err := h.db.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}

	customer.Name = req.Name
	customer.Email = strings.ToLower(strings.TrimSpace(req.Email))
	customer.Phone = req.Phone
	customer.Address = req.Address

	if err := h.db.Save(&customer).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}

	httpresp.OK(c, customer)
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	var customer models.Customer
	if err := h.db.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
		return
	}

	var orders int64
	h.db.Model(&models.Order{}).Where("customer_id = ?", customer.ID).Count(&orders)
	if orders > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete customer with existing orders"})
		return
	}

	if err := h.db.Delete(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CustomerHandler) UpdateRole(c *gin.Context) {
	h.updateRole(c, "id = ?", c.Param("id"))
}

func (h *CustomerHandler) UpdateRoleByEmail(c *gin.Context) {
	h.updateRole(c, "email = ?", c.Param("email"))
}

func (h *CustomerHandler) updateRole(c *gin.Context, query string, arg any) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be CUSTOMER or ADMIN"})
		return
	}

	role := strings.ToUpper(req.Role)
	if role != models.RoleCustomer && role != models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be CUSTOMER or ADMIN"})
		return
	}

	var customer models.Customer
	if err := h.db.First(&customer, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}

	if err := h.db.Model(&customer).Update("role", role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}

	httpresp.OK(c, gin.H{
		"message": "Role updated successfully",
		"customer": gin.H{
			"id":    customer.ID,
			"email": customer.Email,
			"name":  customer.Name,
			"role":  customer.Role,
		},
	})
}
