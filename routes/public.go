package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	contactControllers "github.com/kartify-in/storefront-api/controllers/contact"
	couponControllers "github.com/kartify-in/storefront-api/controllers/coupon"
	productControllers "github.com/kartify-in/storefront-api/controllers/product"
)

// SetupPublicRoutes registers the unauthenticated storefront endpoints.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/products", productControllers.GetProducts(db))
	r.GET("/products/:id", productControllers.GetProductByID(db))

	r.POST("/coupons/validate", couponControllers.ValidateCoupon(db))

	r.POST("/contact", contactControllers.CreateContact(db))
}
