package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kartify-in/storefront-api/client"
	"github.com/kartify-in/storefront-api/errs"
	"github.com/kartify-in/storefront-api/models"
)

type fakeSession struct {
	authenticated bool
}

func (s fakeSession) Authenticated() bool { return s.authenticated }
func (s fakeSession) Token() string       { return "tok" }

type fakeCart struct {
	cart       client.Cart
	refreshErr error
	refreshes  int
}

func (c *fakeCart) Refresh(ctx context.Context) error {
	c.refreshes++
	return c.refreshErr
}

func (c *fakeCart) Cart() client.Cart { return c.cart }

func (c *fakeCart) set(items ...client.CartItem) {
	c.cart = client.Cart{Items: items}
	for _, item := range items {
		c.cart.TotalItems += item.Quantity
		c.cart.Subtotal += item.UnitPrice * float64(item.Quantity)
	}
}

type fakePlacer struct {
	order   *client.Order
	err     error
	gotReq  client.OrderRequest
	calls   int
	onPlace func()
}

func (p *fakePlacer) PlaceOrder(ctx context.Context, req client.OrderRequest) (*client.Order, error) {
	p.calls++
	p.gotReq = req
	if p.onPlace != nil {
		p.onPlace()
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.order, nil
}

// fakeCoupons evaluates against the real fixed table.
type fakeCoupons struct{}

func (fakeCoupons) ValidateCoupon(ctx context.Context, code string, orderAmount float64) (float64, error) {
	return models.EvaluateCoupon(models.DefaultCoupons, code, orderAmount)
}

func newWizard(cart *fakeCart, placer *fakePlacer) *Wizard {
	return NewWizard(fakeSession{authenticated: true}, cart, placer, fakeCoupons{})
}

func advanceToConfirm(t *testing.T, w *Wizard) {
	t.Helper()
	w.SetAddress(validAddress())
	require.NoError(t, w.Next())
	w.SetPayment(PaymentForm{Method: MethodCOD})
	require.NoError(t, w.Next())
	require.Equal(t, StepConfirm, w.Step())
}

func TestWizardCannotSkipSteps(t *testing.T) {
	w := newWizard(&fakeCart{}, &fakePlacer{})

	// Submitting straight from Address is rejected and the step holds.
	_, err := w.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, StepAddress, w.Step())

	// An invalid address blocks the first transition too.
	w.SetAddress(AddressForm{FullName: "Asha Nair"})
	err = w.Next()
	require.Error(t, err)
	assert.Equal(t, errs.CodeValidationFailed, errs.CodeOf(err))
	assert.Equal(t, StepAddress, w.Step())
	assert.Contains(t, errs.FieldsOf(err), "email")
	assert.Equal(t, errs.FieldsOf(err), w.FieldErrors())
}

func TestWizardBackPreservesData(t *testing.T) {
	w := newWizard(&fakeCart{}, &fakePlacer{})
	addr := validAddress()
	w.SetAddress(addr)
	require.NoError(t, w.Next())
	require.Equal(t, StepPayment, w.Step())

	w.Back()
	assert.Equal(t, StepAddress, w.Step())
	assert.Equal(t, addr, w.Address()) // exact same field values

	require.NoError(t, w.Next())
	w.SetPayment(PaymentForm{Method: MethodUPI, UPIID: "asha@okbank"})
	require.NoError(t, w.Next())
	w.Back()
	assert.Equal(t, StepPayment, w.Step())
	assert.Equal(t, MethodUPI, w.Payment().Method)
	assert.Equal(t, "asha@okbank", w.Payment().UPIID)
}

func TestWizardPaymentValidationBlocks(t *testing.T) {
	w := newWizard(&fakeCart{}, &fakePlacer{})
	w.SetAddress(validAddress())
	require.NoError(t, w.Next())

	w.SetPayment(PaymentForm{Method: MethodCard, CardNumber: "42"})
	err := w.Next()
	require.Error(t, err)
	assert.Equal(t, StepPayment, w.Step())
}

func TestWizardQuoteShippingRule(t *testing.T) {
	cart := &fakeCart{}
	cart.set(client.CartItem{ProductID: 1, UnitPrice: 249, Quantity: 2}) // 498
	w := newWizard(cart, &fakePlacer{})

	q := w.Quote()
	assert.Equal(t, 498.0, q.Subtotal)
	assert.Equal(t, 50.0, q.Shipping)
	assert.Equal(t, 548.0, q.Total)

	cart.set(client.CartItem{ProductID: 1, UnitPrice: 500, Quantity: 1})
	q = w.Quote()
	assert.Equal(t, 0.0, q.Shipping)
	assert.Equal(t, 500.0, q.Total)
}

func TestWizardCouponNeverBlocks(t *testing.T) {
	cart := &fakeCart{}
	cart.set(client.CartItem{ProductID: 1, UnitPrice: 249, Quantity: 2})
	placer := &fakePlacer{order: &client.Order{OrderRef: "ORD-1", Status: "pending"}}
	w := newWizard(cart, placer)
	advanceToConfirm(t, w)

	err := w.ApplyCoupon(context.Background(), "SAVE20") // 498 < 500 minimum
	require.Error(t, err)
	assert.Equal(t, errs.CodeCouponBelowMinimum, errs.CodeOf(err))
	assert.Contains(t, w.CouponError(), "500")
	assert.Equal(t, StepConfirm, w.Step())

	// Checkout proceeds regardless of the rejected coupon.
	_, err = w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StepCompleted, w.Step())
	assert.Empty(t, placer.gotReq.CouponCode)
}

func TestWizardSubmitRequiresSession(t *testing.T) {
	cart := &fakeCart{}
	cart.set(client.CartItem{ProductID: 1, UnitPrice: 600, Quantity: 1})
	w := NewWizard(fakeSession{authenticated: false}, cart, &fakePlacer{}, fakeCoupons{})
	advanceToConfirm(t, w)

	_, err := w.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, errs.CodeAuthRequired, errs.CodeOf(err))
	assert.Equal(t, StepConfirm, w.Step())
}

func TestWizardSubmitRequiresNonEmptyCart(t *testing.T) {
	w := newWizard(&fakeCart{}, &fakePlacer{})
	advanceToConfirm(t, w)

	_, err := w.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, errs.CodeOrderCreation, errs.CodeOf(err))
	assert.Equal(t, StepConfirm, w.Step())
}

func TestWizardSubmitFailureReturnsToConfirm(t *testing.T) {
	cart := &fakeCart{}
	cart.set(client.CartItem{ProductID: 1, UnitPrice: 600, Quantity: 1})
	placer := &fakePlacer{err: errs.OrderCreation("insufficient stock for product: Masala Tea")}
	w := newWizard(cart, placer)
	addr := validAddress()
	w.SetAddress(addr)
	require.NoError(t, w.Next())
	w.SetPayment(PaymentForm{Method: MethodCOD})
	require.NoError(t, w.Next())

	_, err := w.Submit(context.Background())
	require.Error(t, err)
	// Back at Confirm (not Submitting), server message verbatim, data intact.
	assert.Equal(t, StepConfirm, w.Step())
	assert.Equal(t, "insufficient stock for product: Masala Tea", w.SubmitError())
	assert.Equal(t, addr, w.Address())

	// The failure is recoverable: a second submit succeeds.
	placer.err = nil
	placer.order = &client.Order{OrderRef: "ORD-2", Status: "pending"}
	_, err = w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StepCompleted, w.Step())
	assert.Empty(t, w.SubmitError())
}

func TestWizardEndToEnd(t *testing.T) {
	cart := &fakeCart{}
	cart.set(client.CartItem{ProductID: 1, UnitPrice: 249, Quantity: 2}) // subtotal 498
	placer := &fakePlacer{}
	w := newWizard(cart, placer)
	advanceToConfirm(t, w)

	// Coupon below minimum at 498
	err := w.ApplyCoupon(context.Background(), "SAVE20")
	require.Error(t, err)
	assert.Equal(t, errs.CodeCouponBelowMinimum, errs.CodeOf(err))

	// Second item raises the subtotal to 897; coupon now applies
	cart.set(
		client.CartItem{ProductID: 1, UnitPrice: 249, Quantity: 2},
		client.CartItem{ProductID: 2, UnitPrice: 399, Quantity: 1},
	)
	require.NoError(t, w.ApplyCoupon(context.Background(), "SAVE20"))

	q := w.Quote()
	assert.Equal(t, 897.0, q.Subtotal)
	assert.Equal(t, 179.0, q.Discount) // floor(897 * 0.20)
	assert.Equal(t, 0.0, q.Shipping)   // free at >= 500
	assert.Equal(t, 718.0, q.Total)

	placer.order = &client.Order{
		OrderRef: "ORD-20250830-abc123", Status: "pending",
		Items: []client.OrderItem{
			{ProductID: 1, UnitPrice: 249, Quantity: 2},
			{ProductID: 2, UnitPrice: 399, Quantity: 1},
		},
		Subtotal: 897, Discount: 179, TotalAmount: 718,
	}
	placer.onPlace = func() { cart.set() } // server clears the cart in the order tx

	order, err := w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StepCompleted, w.Step())
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, "SAVE20", placer.gotReq.CouponCode)
	assert.Equal(t, []int{2, 1}, []int{order.Items[0].Quantity, order.Items[1].Quantity})
	assert.True(t, w.cart.Cart().Empty())
	assert.GreaterOrEqual(t, cart.refreshes, 2) // pre-submit check plus post-order re-sync
}
