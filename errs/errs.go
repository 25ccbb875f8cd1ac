package errs

import (
	"errors"
	"fmt"
)

// Code is a stable machine-readable error code shared by the API and its clients.
type Code string

const (
	CodeAuthRequired       Code = "AUTH_REQUIRED"
	CodeValidationFailed   Code = "VALIDATION_FAILED"
	CodeInvalidCoupon      Code = "INVALID_COUPON"
	CodeCouponExpired      Code = "COUPON_EXPIRED"
	CodeCouponBelowMinimum Code = "COUPON_BELOW_MINIMUM"
	CodeOrderCreation      Code = "ORDER_CREATION_FAILED"
	CodeInvalidTransition  Code = "INVALID_TRANSITION"
	CodeUnreachable        Code = "UNREACHABLE"
	CodeNotFound           Code = "NOT_FOUND"
)

type Error struct {
	Code    Code              `json:"code"`
	Message string            `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"` // field name -> message, validation only
}

func (e *Error) Error() string { return e.Message }

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func AuthRequired() *Error {
	return New(CodeAuthRequired, "authentication required")
}

// Validation reports every failing field together, not just the first.
func Validation(fields map[string]string) *Error {
	return &Error{Code: CodeValidationFailed, Message: "validation failed", Fields: fields}
}

func InvalidCoupon(code string) *Error {
	return New(CodeInvalidCoupon, fmt.Sprintf("coupon %q not found", code))
}

func CouponExpired(code string) *Error {
	return New(CodeCouponExpired, fmt.Sprintf("coupon %q is no longer active", code))
}

func CouponBelowMinimum(minimum float64) *Error {
	return New(CodeCouponBelowMinimum, fmt.Sprintf("order amount below coupon minimum of %.0f", minimum))
}

func OrderCreation(message string) *Error {
	return New(CodeOrderCreation, message)
}

func InvalidTransition(from, to string) *Error {
	return New(CodeInvalidTransition, fmt.Sprintf("cannot transition from %q to %q", from, to))
}

// Unreachable wraps a transport-level failure. Callers may retry; validation
// failures must never be reported through this path.
func Unreachable(err error) *Error {
	return New(CodeUnreachable, "service unreachable: "+err.Error())
}

// CodeOf extracts the taxonomy code from err, or "" for untyped errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// FieldsOf returns the per-field messages of a validation error, or nil.
func FieldsOf(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}
