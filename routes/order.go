package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/kartify-in/storefront-api/controllers/order"
	"github.com/kartify-in/storefront-api/middleware"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken)
	{
		// Create a new order from the caller's cart
		orders.POST("", orderControllers.PlaceOrderHandler(db))

		// Fetch the caller's orders
		orders.GET("/user", orderControllers.GetUserOrdersHandler(db))

		// Fetch a single order by id or order ref (owner only)
		orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
	}
}
