package orderControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kartify-in/storefront-api/errs"
	"github.com/kartify-in/storefront-api/models"
)

type BulkStatusRequest struct {
	FromStatus string `json:"from_status" binding:"required"`
	ToStatus   string `json:"to_status" binding:"required"`
	Search     string `json:"search"` // optional extra filter, same semantics as the listing
}

// PUT /admin/orders/bulk-status
//
// One server-side UPDATE over the full filtered bucket, never iteration over a
// fetched page. Every row in the bucket shares from_status, so validating the
// edge once covers the whole set and the single statement keeps it atomic.
func BulkUpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BulkStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		from, err := models.ParseOrderStatus(req.FromStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		to, err := models.ParseOrderStatus(req.ToStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !from.CanTransition(to) {
			respondError(c, errs.InvalidTransition(string(from), string(to)))
			return
		}

		query := db.Model(&models.Order{}).Where("status = ?", from)
		if req.Search != "" {
			pattern := "%" + req.Search + "%"
			query = query.Where("order_ref ILIKE ? OR ship_full_name ILIKE ?", pattern, pattern)
		}

		result := query.Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to bulk update order status"})
			return
		}

		broadcastEvent(StatusEvent{
			Type:       EventBulkStatusChanged,
			FromStatus: string(from),
			ToStatus:   string(to),
			Count:      result.RowsAffected,
		})
		c.JSON(http.StatusOK, gin.H{"updated": result.RowsAffected})
	}
}
