package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kartify-in/storefront-api/errs"
	"github.com/kartify-in/storefront-api/models"
)

// -------- Request Structs --------

type ShippingAddressInput struct {
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Line     string `json:"line" binding:"required"`
	City     string `json:"city"`
	State    string `json:"state" binding:"required"`
	Pincode  string `json:"pincode" binding:"required"`
}

type PlaceOrderRequest struct {
	ShippingAddress ShippingAddressInput `json:"shipping_address" binding:"required"`
	PaymentMethod   string               `json:"payment_method" binding:"required"` // e.g. "card", "upi", "cod"
	CouponCode      string               `json:"coupon_code"`
	Notes           string               `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// -------- Helpers --------

// Generate the human-readable order reference, distinct from the row ID.
func generateOrderRef() string {
	return "ORD-" + time.Now().Format("20060102") + "-" + strings.Split(uuid.NewString(), "-")[0]
}

func respondError(c *gin.Context, err error) {
	var e *errs.Error
	if errors.As(err, &e) {
		c.JSON(httpStatusFor(e.Code), e)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func httpStatusFor(code errs.Code) int {
	switch code {
	case errs.CodeAuthRequired:
		return http.StatusUnauthorized
	case errs.CodeValidationFailed, errs.CodeOrderCreation,
		errs.CodeInvalidCoupon, errs.CodeCouponExpired, errs.CodeCouponBelowMinimum:
		return http.StatusBadRequest
	case errs.CodeInvalidTransition:
		return http.StatusConflict
	case errs.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// -------- Core Logic --------

// PlaceOrder turns the user's cart into an immutable order snapshot. Stock is
// checked and deducted under row locks, item prices are re-resolved from the
// catalog, the coupon is re-evaluated server-side, and the cart is cleared,
// all in one transaction.
func PlaceOrder(db *gorm.DB, userID string, req PlaceOrderRequest) (*models.Order, error) {
	var cart models.Cart
	if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.OrderCreation("cart is empty")
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, errs.OrderCreation("cart is empty")
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var subtotal float64
		var orderItems []models.OrderItem

		for _, item := range cart.Items {
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errs.OrderCreation("product no longer available: " + item.ProductName)
				}
				return err
			}

			if product.Stock < item.Quantity {
				return errs.OrderCreation("insufficient stock for product: " + product.Name)
			}

			// Deduct stock
			product.Stock -= item.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}

			// Snapshot at the current catalog price, not the cart's add-time price
			subtotal += product.UnitPrice * float64(item.Quantity)
			orderItems = append(orderItems, models.OrderItem{
				ProductID:    product.ID,
				ProductName:  product.Name,
				ProductImage: product.Image,
				UnitPrice:    product.UnitPrice,
				Quantity:     item.Quantity,
			})
		}

		var discount float64
		if req.CouponCode != "" {
			var coupons []models.Coupon
			if err := tx.Find(&coupons).Error; err != nil {
				return err
			}
			var err error
			if discount, err = models.EvaluateCoupon(coupons, req.CouponCode, subtotal); err != nil {
				return err
			}
		}

		pricing := ComputePricing(subtotal, discount, TaxPercent())

		order = models.Order{
			OrderRef: generateOrderRef(),
			UserID:   userID,
			Items:    orderItems,
			ShippingAddress: models.Address{
				FullName: req.ShippingAddress.FullName,
				Phone:    req.ShippingAddress.Phone,
				Line:     req.ShippingAddress.Line,
				City:     req.ShippingAddress.City,
				State:    req.ShippingAddress.State,
				Pincode:  req.ShippingAddress.Pincode,
			},
			PaymentMethod: req.PaymentMethod,
			CouponCode:    req.CouponCode,
			Notes:         req.Notes,
			Subtotal:      pricing.Subtotal,
			Discount:      pricing.Discount,
			ShippingCost:  pricing.ShippingCost,
			Tax:           pricing.Tax,
			TotalAmount:   pricing.Total,
			Status:        models.OrderStatusPending,
			CreatedAt:     time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Clear cart items; the cart row itself survives
		return tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Handlers --------

// POST /orders
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := PlaceOrder(db, userID, req)
		if err != nil {
			respondError(c, err)
			return
		}

		broadcastEvent(StatusEvent{
			Type:     EventOrderPlaced,
			OrderRef: order.OrderRef,
			ToStatus: string(order.Status),
		})
		c.JSON(http.StatusCreated, order)
	}
}

// GET /orders/user
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:orderID accepts a numeric id or an order ref, owner only.
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		id := c.Param("orderID")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		order, err := findOrder(db, id)
		if err != nil {
			respondError(c, err)
			return
		}
		if order.UserID != userID {
			c.JSON(http.StatusNotFound, errs.New(errs.CodeNotFound, "order not found"))
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

func findOrder(db *gorm.DB, idOrRef string) (*models.Order, error) {
	query := db.Preload("Items")
	if n, err := strconv.Atoi(idOrRef); err == nil {
		query = query.Where("id = ? OR order_ref = ?", n, idOrRef)
	} else {
		query = query.Where("order_ref = ?", idOrRef)
	}

	var order models.Order
	if err := query.First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.New(errs.CodeNotFound, "order not found")
		}
		return nil, err
	}
	return &order, nil
}

// GET /admin/orders/:orderID accepts a numeric id or an order ref. Sits behind
// the admin credential, so no owner constraint applies.
func GetAdminOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := findOrder(db, c.Param("orderID"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /admin/orders?status=&search=&page=&limit=
func ListOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Order{})

		if raw := c.Query("status"); raw != "" {
			status, err := models.ParseOrderStatus(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			query = query.Where("status = ?", status)
		}
		if search := c.Query("search"); search != "" {
			pattern := "%" + search + "%"
			query = query.Where("order_ref ILIKE ? OR ship_full_name ILIKE ?", pattern, pattern)
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

		var orders []models.Order
		if err := query.
			Preload("Items").
			Order("created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": orders,
			"total":  total,
			"page":   page,
			"limit":  limit,
		})
	}
}

// PUT /admin/orders/:orderID/status
//
// Single transition, routed through the status graph. Illegal moves leave the
// row untouched and answer 409.
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := findOrder(db, orderID)
		if err != nil {
			respondError(c, err)
			return
		}
		if !order.Status.CanTransition(newStatus) {
			respondError(c, errs.InvalidTransition(string(order.Status), string(newStatus)))
			return
		}

		if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}

		broadcastEvent(StatusEvent{
			Type:       EventStatusChanged,
			OrderRef:   order.OrderRef,
			FromStatus: string(order.Status),
			ToStatus:   string(newStatus),
		})
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}
