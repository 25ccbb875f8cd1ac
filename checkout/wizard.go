// Package checkout implements the storefront's three-step checkout flow as an
// explicit state machine: Address -> Payment -> Confirm -> Submitting ->
// Completed. No step is skippable and back-navigation never loses form data.
package checkout

import (
	"context"

	"github.com/kartify-in/storefront-api/client"
	"github.com/kartify-in/storefront-api/errs"
)

type Step int

const (
	StepAddress Step = iota
	StepPayment
	StepConfirm
	StepSubmitting
	StepCompleted
)

func (s Step) String() string {
	switch s {
	case StepAddress:
		return "address"
	case StepPayment:
		return "payment"
	case StepConfirm:
		return "confirm"
	case StepSubmitting:
		return "submitting"
	case StepCompleted:
		return "completed"
	}
	return "unknown"
}

// Shipping preview mirrors the server rule so Confirm can show the breakdown
// before submitting; the server remains authoritative.
const (
	freeShippingThreshold = 500.0
	flatShippingFee       = 50.0
)

// CartSource is the remote-synced cart the wizard reads.
type CartSource interface {
	Refresh(ctx context.Context) error
	Cart() client.Cart
}

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req client.OrderRequest) (*client.Order, error)
}

type CouponValidator interface {
	ValidateCoupon(ctx context.Context, code string, orderAmount float64) (float64, error)
}

// Quote is the pricing preview shown at Confirm.
type Quote struct {
	Subtotal float64
	Discount float64
	Shipping float64
	Total    float64
}

type Wizard struct {
	session client.Session
	cart    CartSource
	placer  OrderPlacer
	coupons CouponValidator

	step    Step
	address AddressForm
	payment PaymentForm

	couponCode string
	discount   float64
	couponErr  string

	fieldErrs map[string]string
	submitErr string
	order     *client.Order
}

func NewWizard(session client.Session, cart CartSource, placer OrderPlacer, coupons CouponValidator) *Wizard {
	return &Wizard{
		session: session,
		cart:    cart,
		placer:  placer,
		coupons: coupons,
		step:    StepAddress,
	}
}

func (w *Wizard) Step() Step                     { return w.step }
func (w *Wizard) Address() AddressForm           { return w.address }
func (w *Wizard) Payment() PaymentForm           { return w.payment }
func (w *Wizard) FieldErrors() map[string]string { return w.fieldErrs }
func (w *Wizard) SubmitError() string            { return w.submitErr }
func (w *Wizard) CouponError() string            { return w.couponErr }
func (w *Wizard) Order() *client.Order           { return w.order }

func (w *Wizard) SetAddress(f AddressForm) { w.address = f }
func (w *Wizard) SetPayment(f PaymentForm) { w.payment = f }

// Next advances one step. A failing validation blocks the transition, records
// the per-field errors and leaves the step unchanged.
func (w *Wizard) Next() error {
	switch w.step {
	case StepAddress:
		if fields := ValidateAddress(w.address); fields != nil {
			w.fieldErrs = fields
			return errs.Validation(fields)
		}
		w.fieldErrs = nil
		w.step = StepPayment
		return nil
	case StepPayment:
		if fields := ValidatePayment(w.payment); fields != nil {
			w.fieldErrs = fields
			return errs.Validation(fields)
		}
		w.fieldErrs = nil
		w.step = StepConfirm
		return nil
	default:
		return errs.New(errs.CodeValidationFailed, "cannot advance from "+w.step.String())
	}
}

// Back returns to the previous form step, keeping everything already entered.
func (w *Wizard) Back() {
	switch w.step {
	case StepPayment:
		w.step = StepAddress
	case StepConfirm:
		w.step = StepPayment
	}
}

// ApplyCoupon evaluates the code against the current subtotal. A rejected
// coupon records an inline message and clears any discount; it never blocks
// checkout.
func (w *Wizard) ApplyCoupon(ctx context.Context, code string) error {
	_, subtotal := w.cartTotals()
	discount, err := w.coupons.ValidateCoupon(ctx, code, subtotal)
	if err != nil {
		w.couponCode = ""
		w.discount = 0
		w.couponErr = err.Error()
		return err
	}
	w.couponCode = code
	w.discount = discount
	w.couponErr = ""
	return nil
}

func (w *Wizard) RemoveCoupon() {
	w.couponCode = ""
	w.discount = 0
	w.couponErr = ""
}

// Quote previews the pricing at Confirm. Tax is applied server-side at order
// creation and is not part of the preview.
func (w *Wizard) Quote() Quote {
	_, subtotal := w.cartTotals()
	shipping := flatShippingFee
	if subtotal >= freeShippingThreshold {
		shipping = 0
	}
	return Quote{
		Subtotal: subtotal,
		Discount: w.discount,
		Shipping: shipping,
		Total:    subtotal - w.discount + shipping,
	}
}

func (w *Wizard) cartTotals() (int, float64) {
	cart := w.cart.Cart()
	return cart.TotalItems, cart.Subtotal
}

// Submit finalizes the order from Confirm. Both prior steps are revalidated
// defensively, the session and a non-empty cart are required, and any failure
// leaves the wizard back at Confirm with the form data intact and the server
// message preserved verbatim.
func (w *Wizard) Submit(ctx context.Context) (*client.Order, error) {
	if w.step != StepConfirm {
		return nil, errs.New(errs.CodeValidationFailed, "order can only be submitted from the confirm step")
	}

	// Defense against stale state: both form steps are re-checked.
	if fields := ValidateAddress(w.address); fields != nil {
		w.fieldErrs = fields
		return nil, errs.Validation(fields)
	}
	if fields := ValidatePayment(w.payment); fields != nil {
		w.fieldErrs = fields
		return nil, errs.Validation(fields)
	}
	w.fieldErrs = nil

	if w.session == nil || !w.session.Authenticated() {
		return nil, errs.AuthRequired()
	}

	if err := w.cart.Refresh(ctx); err != nil {
		w.submitErr = err.Error()
		return nil, err
	}
	if w.cart.Cart().Empty() {
		err := errs.OrderCreation("cart is empty")
		w.submitErr = err.Error()
		return nil, err
	}

	w.step = StepSubmitting
	order, err := w.placer.PlaceOrder(ctx, client.OrderRequest{
		ShippingAddress: client.Address{
			FullName: w.address.FullName,
			Phone:    w.address.Phone,
			Line:     w.address.Address,
			State:    w.address.State,
			Pincode:  w.address.Pincode,
		},
		PaymentMethod: string(w.payment.Method),
		CouponCode:    w.couponCode,
	})
	if err != nil {
		// Back to Confirm, not Submitting; the server message surfaces as-is.
		w.step = StepConfirm
		w.submitErr = err.Error()
		return nil, err
	}

	// The server cleared the cart inside the order transaction; re-sync the
	// local copy. A failed refresh here is not a failed order.
	_ = w.cart.Refresh(ctx)

	w.order = order
	w.submitErr = ""
	w.step = StepCompleted
	return order, nil
}
