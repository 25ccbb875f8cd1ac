package couponControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kartify-in/storefront-api/errs"
	"github.com/kartify-in/storefront-api/models"
)

type ValidateCouponInput struct {
	Code        string  `json:"code" binding:"required"`
	OrderAmount float64 `json:"order_amount" binding:"required,gt=0"`
}

// POST /coupons/validate
//
// Stateless evaluation against the fixed coupon table. A rejected coupon is a
// 200 with valid=false; the coupon is optional and never blocks checkout.
func ValidateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ValidateCouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var coupons []models.Coupon
		if err := db.Find(&coupons).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load coupons"})
			return
		}

		discount, err := models.EvaluateCoupon(coupons, input.Code, input.OrderAmount)
		if err != nil {
			var e *errs.Error
			if errors.As(err, &e) {
				c.JSON(http.StatusOK, gin.H{"valid": false, "code": e.Code, "error": e.Message})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"valid": true, "discount_amount": discount})
	}
}
