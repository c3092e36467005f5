package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/sweetdreamlabs/sweetdream/internal/domain/order"
	"github.com/sweetdreamlabs/sweetdream/internal/httperr"
	"github.com/sweetdreamlabs/sweetdream/internal/httpresp"
	ucOrder "github.com/sweetdreamlabs/sweetdream/internal/usecase/order"
	"github.com/sweetdreamlabs/sweetdream/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type OrderHandler struct {
	create *ucOrder.CreateOrder
	update *ucOrder.UpdateStatus
	cancel *ucOrder.CancelOrder
	repo   domain.Repository
}

func NewOrderHandler(
	create *ucOrder.CreateOrder,
	update *ucOrder.UpdateStatus,
	cancel *ucOrder.CancelOrder,
	repo domain.Repository,
) *OrderHandler {
	return &OrderHandler{
		create: create,
		update: update,
		cancel: cancel,
		repo:   repo,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type OrderCustomerRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"omitempty,max=20"`
	Address string `json:"address" binding:"omitempty,max=500"`
}

type OrderItemRequest struct {
	ProductID uint    `json:"productId" binding:"required"`
	Size      string  `json:"size" binding:"required,max=20"`
	Price     float64 `json:"price" binding:"required,gt=0"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	Customer OrderCustomerRequest `json:"customer" binding:"required"`
	Items    []OrderItemRequest   `json:"items" binding:"required,min=1,dive"`
	Notes    string               `json:"notes" binding:"omitempty,max=500"`
}

type UpdateOrderStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	IsAdmin bool   `json:"isAdmin"`
}

type CancelOrderRequest struct {
	IsAdmin bool `json:"isAdmin"`
}

const progressionHint = "Phải tuân theo trình tự: Chờ xác nhận → Đã xác nhận → Đang chuẩn bị → Sẵn sàng giao → Đã giao"

// ======================================================
// CREATE
// ======================================================

func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.ValidationFailed(c, validators.Details(err))
		return
	}

	in := ucOrder.CreateOrderInput{
		Customer: domain.CustomerInput{
			Name:    req.Customer.Name,
			Email:   req.Customer.Email,
			Phone:   req.Customer.Phone,
			Address: req.Customer.Address,
		},
		Notes: req.Notes,
	}
	for _, item := range req.Items {
		in.Items = append(in.Items, ucOrder.OrderItemInput{
			ProductID: item.ProductID,
			Size:      item.Size,
			Price:     decimal.NewFromFloat(item.Price),
			Quantity:  item.Quantity,
		})
	}

	o, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "user_service_unavailable"):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "User Service unavailable. Please try again later.",
			})
		case httperr.IsBusiness(err, "product_not_found"),
			httperr.IsBusiness(err, "size_not_found"):
			c.JSON(http.StatusBadRequest, gin.H{"error": httperr.BusinessMessage(err)})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   o,
	})
}

// ======================================================
// LIST / GET
// ======================================================

func (h *OrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}

	filter := domain.ListFilter{
		Status:        c.Query("status"),
		CustomerEmail: c.Query("customerEmail"),
		Page:          page,
		Limit:         limit,
	}

	orders, total, err := h.repo.ListOrders(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	httpresp.OK(c, gin.H{
		"orders":     orders,
		"pagination": httpresp.NewPagination(page, limit, total),
	})
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	o, err := h.repo.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	httpresp.OK(c, o)
}

// ======================================================
// STATUS TRANSITION
// ======================================================

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.ValidationFailed(c, validators.Details(err))
		return
	}

	o, err := h.update.Execute(c.Request.Context(), id, domain.Status(req.Status), req.IsAdmin)
	if err != nil {
		h.writeTransitionError(c, err)
		return
	}

	httpresp.OK(c, o)
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	// The cancel body is optional; a missing or empty body means a
	// customer-initiated cancel. A body that is present but unparseable is
	// still a 400.
	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httperr.ValidationFailed(c, validators.Details(err))
		return
	}

	o, err := h.cancel.Execute(c.Request.Context(), id, req.IsAdmin)
	if err != nil {
		h.writeTransitionError(c, err)
		return
	}

	httpresp.OK(c, o)
}

func (h *OrderHandler) writeTransitionError(c *gin.Context, err error) {
	var te *domain.TransitionError
	if errors.As(err, &te) {
		body := gin.H{
			"error":         "Invalid status transition",
			"message":       progressionHint,
			"currentStatus": te.Current,
		}
		if next, ok := te.AllowedNext(); ok {
			body["allowedNextStatus"] = next
		}
		c.JSON(http.StatusBadRequest, body)
		return
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case httperr.IsBusiness(err, "invalid_status"):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":         "Invalid status",
			"validStatuses": domain.ValidStatuses(),
		})
	case httperr.IsBusiness(err, "order_cancelled"):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot change status of cancelled order"})
	case httperr.IsBusiness(err, "order_delivered"):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot change status of delivered order"})
	case httperr.IsBusiness(err, "already_cancelled"):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order is already cancelled"})
	case httperr.IsBusiness(err, "cancel_delivered"):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot cancel delivered order"})
	case httperr.IsBusiness(err, "cancel_forbidden"):
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Cannot cancel order after it has started processing",
			"message": httperr.BusinessMessage(err),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
	}
}

// ======================================================
// DELETE
// ======================================================

func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	if err := h.repo.DeleteOrder(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		return
	}

	c.Status(http.StatusNoContent)
}

func orderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return 0, false
	}
	return uint(id), true
}
