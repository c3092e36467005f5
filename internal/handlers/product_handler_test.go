package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sweetdreamlabs/sweetdream/internal/models"
)

func newProductRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	handler := NewProductHandler(db, nil)

	r := gin.New()
	products := r.Group("/api/products")
	{
		products.GET("", handler.List)
		products.GET("/:id", handler.Get)
		products.GET("/category/:categoryId", handler.ListByCategory)
		products.POST("", handler.Create)
		products.PUT("/:id", handler.Update)
		products.DELETE("/:id", handler.Delete)
	}
	return r, db
}

func TestCreateProduct(t *testing.T) {
	r, db := newProductRouter(t)
	require.NoError(t, db.Create(&models.Category{Name: "Cakes"}).Error)

	w := doJSON(t, r, http.MethodPost, "/api/products", gin.H{
		"name":       "Red Velvet",
		"img":        "https://cdn.example.com/red-velvet.jpg",
		"categoryId": 1,
		"sizes": []gin.H{
			{"size": "S", "price": 90000},
			{"size": "L", "price": 150000},
		},
	}, nil)

	assertStatus(t, w, http.StatusCreated)
	body := decodeBody(t, w)
	assert.Equal(t, "Red Velvet", body["name"])
	assert.Equal(t, "Cakes", body["category"].(map[string]any)["name"])
	assert.Len(t, body["sizes"].([]any), 2)
}

func TestCreateProductValidation(t *testing.T) {
	r, _ := newProductRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/products", gin.H{
		"name":       "Red Velvet",
		"img":        "not-a-url",
		"categoryId": 1,
		"sizes":      []gin.H{},
	}, nil)

	assertStatus(t, w, http.StatusBadRequest)
	body := decodeBody(t, w)
	assert.Equal(t, "Validation failed", body["error"])

	details := body["details"].([]any)
	assert.Contains(t, details, "img must be a valid URL")
	assert.Contains(t, details, "sizes is required")
}

func TestGetProduct(t *testing.T) {
	r, db := newProductRouter(t)
	seedCatalog(t, db)

	w := doJSON(t, r, http.MethodGet, "/api/products/1", nil, nil)
	assertStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	assert.Equal(t, "Tiramisu", body["name"])

	sizes := body["sizes"].([]any)
	require.Len(t, sizes, 2)
	assert.Equal(t, "S", sizes[0].(map[string]any)["size"])
	assert.EqualValues(t, 80000, sizes[0].(map[string]any)["price"])
}

func TestListProductsByCategory(t *testing.T) {
	r, db := newProductRouter(t)
	seedCatalog(t, db)

	other := models.Category{Name: "Breads"}
	require.NoError(t, db.Create(&other).Error)
	require.NoError(t, db.Create(&models.Product{
		Name:       "Baguette",
		Img:        "https://cdn.example.com/baguette.jpg",
		CategoryID: other.ID,
		Sizes:      []models.ProductSize{{Size: "M"}},
	}).Error)

	w := doJSON(t, r, http.MethodGet, "/api/products/category/2", nil, nil)
	assertStatus(t, w, http.StatusOK)

	var products []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Baguette", products[0]["name"])
}

// Editing a product replaces its size variants wholesale.
func TestUpdateProductReplacesSizes(t *testing.T) {
	r, db := newProductRouter(t)
	_, product := seedCatalog(t, db)

	w := doJSON(t, r, http.MethodPut, "/api/products/1", gin.H{
		"name":       "Tiramisu Classic",
		"img":        "https://cdn.example.com/tiramisu.jpg",
		"categoryId": 1,
		"sizes": []gin.H{
			{"size": "L", "price": 200000},
		},
	}, nil)

	assertStatus(t, w, http.StatusOK)
	body := decodeBody(t, w)
	assert.Equal(t, "Tiramisu Classic", body["name"])

	sizes := body["sizes"].([]any)
	require.Len(t, sizes, 1)
	assert.Equal(t, "L", sizes[0].(map[string]any)["size"])

	var count int64
	db.Model(&models.ProductSize{}).Where("product_id = ?", product.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDeleteProductReferencedByOrderRejected(t *testing.T) {
	r, db := newProductRouter(t)
	_, product := seedCatalog(t, db)
	customer := seedCustomer(t, db, "an@example.com")

	order := models.Order{
		CustomerID: customer.ID,
		Status:     "DELIVERED",
		Items:      []models.OrderItem{{ProductID: product.ID, Size: "M", Quantity: 1}},
	}
	require.NoError(t, db.Create(&order).Error)

	w := doJSON(t, r, http.MethodDelete, "/api/products/1", nil, nil)

	assertStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "Cannot delete product referenced by existing orders", decodeBody(t, w)["error"])
}

func TestDeleteProductRemovesSizes(t *testing.T) {
	r, db := newProductRouter(t)
	seedCatalog(t, db)

	w := doJSON(t, r, http.MethodDelete, "/api/products/1", nil, nil)
	assertStatus(t, w, http.StatusNoContent)

	var sizes int64
	db.Model(&models.ProductSize{}).Count(&sizes)
	assert.Zero(t, sizes)
}

func TestGetProductNotFound(t *testing.T) {
	r, _ := newProductRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/products/42", nil, nil)
	assertStatus(t, w, http.StatusNotFound)
	assert.Equal(t, "Product not found", decodeBody(t, w)["error"])
}
