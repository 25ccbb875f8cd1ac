package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminController "github.com/kartify-in/storefront-api/controllers/admin"
	cartControllers "github.com/kartify-in/storefront-api/controllers/cart"
	contactControllers "github.com/kartify-in/storefront-api/controllers/contact"
	orderControllers "github.com/kartify-in/storefront-api/controllers/order"
	productControllers "github.com/kartify-in/storefront-api/controllers/product"
	userControllers "github.com/kartify-in/storefront-api/controllers/user"
	"github.com/kartify-in/storefront-api/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-Key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── Dashboard ───────────
		adminGroup.GET("/stats", adminController.GetStats(db))

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.ListOrdersHandler(db))
			orderAdmin.GET("/ws", orderControllers.OrderFeedHandler)
			orderAdmin.GET("/export", adminController.ExportOrdersToExcel(db))
			orderAdmin.PUT("/bulk-status", orderControllers.BulkUpdateOrderStatusHandler(db))
			orderAdmin.GET("/:orderID", orderControllers.GetAdminOrderHandler(db))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
		}

		// ─────────── Contact Management ───────────
		contactAdmin := adminGroup.Group("/contacts")
		{
			contactAdmin.GET("", contactControllers.ListContacts(db))
			contactAdmin.PUT("/bulk-status", contactControllers.BulkUpdateContactStatus(db))
			contactAdmin.PUT("/:contactID/status", contactControllers.UpdateContactStatus(db))
		}

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productControllers.CreateProduct(db))
			productAdmin.PUT("/:id", productControllers.UpdateProduct(db))
			productAdmin.GET("", productControllers.GetProducts(db))
			productAdmin.DELETE("/:id", productControllers.DeleteProduct(db))
		}

		// ─────────── User Support Views ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(db))
		adminGroup.GET("/users/:user_id/cart", cartControllers.GetAdminUserCart(db))
	}
}
