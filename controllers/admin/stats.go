package adminController

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kartify-in/storefront-api/models"
)

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// GET /admin/stats
//
// Dashboard aggregates, recomputed on every request. A failing query answers
// 503 "stats unavailable" rather than stale or fabricated numbers.
func GetStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderCounts, err := countByStatus(db, &models.Order{})
		if err != nil {
			statsUnavailable(c, err)
			return
		}
		contactCounts, err := countByStatus(db, &models.ContactMessage{})
		if err != nil {
			statsUnavailable(c, err)
			return
		}

		var revenue float64
		if err := db.Model(&models.Order{}).
			Where("status NOT IN ?", []models.OrderStatus{models.OrderStatusCancelled, models.OrderStatusRefunded}).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&revenue).Error; err != nil {
			statsUnavailable(c, err)
			return
		}

		// Recent orders feed the per-product summary
		var orders []models.Order
		if err := db.Preload("Items").
			Order("created_at DESC").
			Limit(500).
			Find(&orders).Error; err != nil {
			statsUnavailable(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"order_counts":   orderCounts,
			"contact_counts": contactCounts,
			"revenue":        revenue,
			"top_products":   TopProducts(orders),
		})
	}
}

func countByStatus(db *gorm.DB, model interface{}) (map[string]int64, error) {
	var rows []statusCount
	if err := db.Model(model).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func statsUnavailable(c *gin.Context, err error) {
	log.Println("stats query failed:", err)
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "stats unavailable"})
}
