package contactControllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kartify-in/storefront-api/errs"
	"github.com/kartify-in/storefront-api/models"
)

type CreateContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

type UpdateContactStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BulkContactStatusRequest struct {
	FromStatus string `json:"from_status" binding:"required"`
	ToStatus   string `json:"to_status" binding:"required"`
	Search     string `json:"search"`
}

// POST /contact
func CreateContact(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateContactInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		msg := models.ContactMessage{
			Name:    input.Name,
			Email:   input.Email,
			Subject: input.Subject,
			Message: input.Message,
			Status:  models.ContactStatusNew,
		}
		if err := db.Create(&msg).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save message"})
			return
		}

		c.JSON(http.StatusCreated, msg)
	}
}

// GET /admin/contacts?status=&search=&page=&limit=
func ListContacts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.ContactMessage{})

		if raw := c.Query("status"); raw != "" {
			status, err := models.ParseContactStatus(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			query = query.Where("status = ?", status)
		}
		if search := c.Query("search"); search != "" {
			pattern := "%" + search + "%"
			query = query.Where("email ILIKE ? OR subject ILIKE ?", pattern, pattern)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if limit < 1 || limit > 100 {
			limit = 20
		}

		var messages []models.ContactMessage
		if err := query.
			Order("created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&messages).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"contacts": messages,
			"total":    total,
			"page":     page,
			"limit":    limit,
		})
	}
}

// PUT /admin/contacts/:contactID/status
func UpdateContactStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		contactID := c.Param("contactID")

		var req UpdateContactStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := models.ParseContactStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var msg models.ContactMessage
		if err := db.First(&msg, "id = ?", contactID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "contact message not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if !msg.Status.CanTransition(newStatus) {
			e := errs.InvalidTransition(string(msg.Status), string(newStatus))
			c.JSON(http.StatusConflict, e)
			return
		}

		if err := db.Model(&msg).Update("status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update contact status"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Contact status updated successfully"})
	}
}

// PUT /admin/contacts/bulk-status
//
// Same contract as the order bulk transition: one statement over the full
// filtered bucket.
func BulkUpdateContactStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BulkContactStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		from, err := models.ParseContactStatus(req.FromStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		to, err := models.ParseContactStatus(req.ToStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !from.CanTransition(to) {
			e := errs.InvalidTransition(string(from), string(to))
			c.JSON(http.StatusConflict, e)
			return
		}

		query := db.Model(&models.ContactMessage{}).Where("status = ?", from)
		if req.Search != "" {
			pattern := "%" + req.Search + "%"
			query = query.Where("email ILIKE ? OR subject ILIKE ?", pattern, pattern)
		}

		result := query.Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to bulk update contact status"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"updated": result.RowsAffected})
	}
}
