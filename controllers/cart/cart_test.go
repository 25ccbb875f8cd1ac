package cartControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kartify-in/storefront-api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Cart{}, &models.CartItem{}))
	return db
}

func newCartRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	r.POST("/user/cart/items", AddCartItem(db))
	return r
}

func postItem(t *testing.T, r *gin.Engine, productID uint, qty int) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(gin.H{"product_id": productID, "quantity": qty})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/user/cart/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddCartItemRejectsBeyondStock(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Product{Name: "Masala Tea", UnitPrice: 249, Stock: 1}).Error)
	r := newCartRouter(db, "user-1")

	w := postItem(t, r, 1, 50)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient stock")

	// Nothing was persisted
	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestAddCartItemIncrementCappedByStock(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Product{Name: "Filter Coffee", UnitPrice: 399, Stock: 3}).Error)
	r := newCartRouter(db, "user-1")

	assert.Equal(t, http.StatusCreated, postItem(t, r, 1, 2).Code)

	// 2 already held, 2 more exceeds the 3 in stock
	w := postItem(t, r, 1, 2)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient stock")

	// Topping up to exactly the stock level is fine
	assert.Equal(t, http.StatusOK, postItem(t, r, 1, 1).Code)

	var item models.CartItem
	require.NoError(t, db.First(&item, "product_id = ?", 1).Error)
	assert.Equal(t, 3, item.Quantity)
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	r := newCartRouter(db, "user-1")

	w := postItem(t, r, 42, 1)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Product does not exist")
}
