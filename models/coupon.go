package models

import (
	"math"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kartify-in/storefront-api/errs"
)

// Coupon is a fixed catalog entity, read-only at evaluation time. Single-use
// tracking is deliberately not modeled.
type Coupon struct {
	ID                 uint    `gorm:"primaryKey" json:"id"`
	Code               string  `gorm:"uniqueIndex;not null" json:"code"`
	DiscountPercent    float64 `json:"discount_percent"`
	MinimumOrderAmount float64 `json:"minimum_order_amount"`
	IsValid            bool    `json:"is_valid"`
}

var DefaultCoupons = []Coupon{
	{Code: "SAVE20", DiscountPercent: 20, MinimumOrderAmount: 500, IsValid: true},
	{Code: "WELCOME10", DiscountPercent: 10, MinimumOrderAmount: 200, IsValid: true},
	{Code: "FESTIVE25", DiscountPercent: 25, MinimumOrderAmount: 1000, IsValid: true},
	{Code: "FLAT15", DiscountPercent: 15, MinimumOrderAmount: 300, IsValid: false},
}

// SeedCoupons installs the fixed coupon table, leaving existing rows untouched.
func SeedCoupons(db *gorm.DB) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&DefaultCoupons).Error
}

// EvaluateCoupon is pure: given the fixed table, a code and an order amount it
// returns the discount or a taxonomy error. Lookup is case-insensitive; rules
// apply in order: unknown code, inactive, below minimum.
func EvaluateCoupon(coupons []Coupon, code string, orderAmount float64) (float64, error) {
	var found *Coupon
	for i := range coupons {
		if strings.EqualFold(coupons[i].Code, code) {
			found = &coupons[i]
			break
		}
	}
	if found == nil {
		return 0, errs.InvalidCoupon(code)
	}
	if !found.IsValid {
		return 0, errs.CouponExpired(found.Code)
	}
	if orderAmount < found.MinimumOrderAmount {
		return 0, errs.CouponBelowMinimum(found.MinimumOrderAmount)
	}
	return math.Floor(orderAmount * found.DiscountPercent / 100), nil
}
