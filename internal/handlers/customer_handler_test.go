package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sweetdreamlabs/sweetdream/internal/models"
)

func newCustomerRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	handler := NewCustomerHandler(db)

	r := gin.New()
	customers := r.Group("/api/customers")
	{
		customers.GET("", handler.List)
		customers.GET("/:id", handler.Get)
		customers.GET("/email/:email", handler.GetByEmail)
		customers.POST("", handler.Create)
		customers.PUT("/:id", handler.Update)
		customers.DELETE("/:id", handler.Delete)
		customers.PATCH("/:id/role", handler.UpdateRole)
		customers.PATCH("/email/:email/role", handler.UpdateRoleByEmail)
	}
	return r, db
}

func TestCreateCustomer(t *testing.T) {
	r, db := newCustomerRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/customers", gin.H{
		"name":  "An Nguyen",
		"email": "An@Example.com",
		"phone": "0901234567",
	}, nil)

	assertStatus(t, w, http.StatusCreated)
	body := decodeBody(t, w)
	assert.Equal(t, "an@example.com", body["email"])
	assert.Equal(t, models.RoleCustomer, body["role"])

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	r, db := newCustomerRouter(t)
	seedCustomer(t, db, "an@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/customers", gin.H{
		"name":  "An",
		"email": "an@example.com",
	}, nil)

	assertStatus(t, w, http.StatusConflict)
	assert.Equal(t, "Email already exists", decodeBody(t, w)["error"])
}

func TestGetCustomerByEmail(t *testing.T) {
	r, db := newCustomerRouter(t)
	seedCustomer(t, db, "an@example.com")

	w := doJSON(t, r, http.MethodGet, "/api/customers/email/an@example.com", nil, nil)
	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, "an@example.com", decodeBody(t, w)["email"])

	w = doJSON(t, r, http.MethodGet, "/api/customers/email/ghost@example.com", nil, nil)
	assertStatus(t, w, http.StatusNotFound)
	assert.Equal(t, "Customer not found", decodeBody(t, w)["error"])
}

// Rows are stored lowercased, so a mixed-case lookup still hits them.
func TestGetCustomerByEmailMixedCase(t *testing.T) {
	r, db := newCustomerRouter(t)
	seedCustomer(t, db, "an@example.com")

	w := doJSON(t, r, http.MethodGet, "/api/customers/email/An@Example.com", nil, nil)
	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, "an@example.com", decodeBody(t, w)["email"])
}

func TestListCustomersWithSearchAndOrderCount(t *testing.T) {
	r, db := newCustomerRouter(t)
	an := seedCustomer(t, db, "an@example.com")
	seedCustomer(t, db, "binh@example.com")
	require.NoError(t, db.Create(&models.Order{CustomerID: an.ID, Status: "PENDING"}).Error)
	require.NoError(t, db.Create(&models.Order{CustomerID: an.ID, Status: "DELIVERED"}).Error)

	w := doJSON(t, r, http.MethodGet, "/api/customers?search=an@example", nil, nil)

	assertStatus(t, w, http.StatusOK)
	body := decodeBody(t, w)
	customers := body["customers"].([]any)
	require.Len(t, customers, 1)
	assert.EqualValues(t, 2, customers[0].(map[string]any)["ordersCount"])

	pagination := body["pagination"].(map[string]any)
	assert.EqualValues(t, 1, pagination["total"])
}

func TestGetCustomerWithOrders(t *testing.T) {
	r, db := newCustomerRouter(t)
	an := seedCustomer(t, db, "an@example.com")
	require.NoError(t, db.Create(&models.Order{CustomerID: an.ID, Status: "PENDING"}).Error)

	w := doJSON(t, r, http.MethodGet, "/api/customers/1", nil, nil)

	assertStatus(t, w, http.StatusOK)
	body := decodeBody(t, w)
	assert.Len(t, body["orders"].([]any), 1)
}

func TestUpdateCustomer(t *testing.T) {
	r, db := newCustomerRouter(t)
	seedCustomer(t, db, "an@example.com")

	w := doJSON(t, r, http.MethodPut, "/api/customers/1", gin.H{
		"name":    "An Updated",
		"email":   "an@example.com",
		"address": "12 Baker St",
	}, nil)

	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, "An Updated", decodeBody(t, w)["name"])
}

func TestDeleteCustomerWithOrdersRejected(t *testing.T) {
	r, db := newCustomerRouter(t)
	an := seedCustomer(t, db, "an@example.com")
	require.NoError(t, db.Create(&models.Order{CustomerID: an.ID, Status: "PENDING"}).Error)

	w := doJSON(t, r, http.MethodDelete, "/api/customers/1", nil, nil)

	assertStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "Cannot delete customer with existing orders", decodeBody(t, w)["error"])
}

func TestDeleteCustomer(t *testing.T) {
	r, db := newCustomerRouter(t)
	seedCustomer(t, db, "an@example.com")

	w := doJSON(t, r, http.MethodDelete, "/api/customers/1", nil, nil)
	assertStatus(t, w, http.StatusNoContent)

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	assert.Zero(t, count)
}

func TestUpdateRole(t *testing.T) {
	r, db := newCustomerRouter(t)
	seedCustomer(t, db, "an@example.com")

	w := doJSON(t, r, http.MethodPatch, "/api/customers/1/role", gin.H{"role": "admin"}, nil)

	assertStatus(t, w, http.StatusOK)
	body := decodeBody(t, w)
	assert.Equal(t, "Role updated successfully", body["message"])

	var customer models.Customer
	require.NoError(t, db.First(&customer, 1).Error)
	assert.Equal(t, models.RoleAdmin, customer.Role)
}

func TestUpdateRoleByEmail(t *testing.T) {
	r, db := newCustomerRouter(t)
	seedCustomer(t, db, "an@example.com")

	w := doJSON(t, r, http.MethodPatch, "/api/customers/email/an@example.com/role", gin.H{"role": "ADMIN"}, nil)
	assertStatus(t, w, http.StatusOK)

	var customer models.Customer
	require.NoError(t, db.First(&customer, 1).Error)
	assert.Equal(t, models.RoleAdmin, customer.Role)
}

func TestUpdateRoleInvalid(t *testing.T) {
	r, db := newCustomerRouter(t)
	seedCustomer(t, db, "an@example.com")

	w := doJSON(t, r, http.MethodPatch, "/api/customers/1/role", gin.H{"role": "SUPERUSER"}, nil)

	assertStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "Invalid role. Must be CUSTOMER or ADMIN", decodeBody(t, w)["error"])
}
