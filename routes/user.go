package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/kartify-in/storefront-api/controllers/cart"
	userControllers "github.com/kartify-in/storefront-api/controllers/user"
	"github.com/kartify-in/storefront-api/middleware"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("", userControllers.GetUser(db))
		userGroup.PUT("", userControllers.UpdateUser(db))

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetUserCart(db))
			cartGroup.POST("/items", cartControllers.AddCartItem(db))
			cartGroup.PUT("/items/:product_id", cartControllers.UpdateCartItem(db))
			cartGroup.DELETE("/items/:product_id", cartControllers.DeleteCartItem(db))
			cartGroup.DELETE("", cartControllers.ClearUserCart(db))
		}
	}
}
