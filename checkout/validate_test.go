package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validAddress() AddressForm {
	return AddressForm{
		FullName: "Asha Nair",
		Email:    "asha@example.com",
		Phone:    "9876543210",
		Address:  "12 MG Road",
		State:    "Karnataka",
		Pincode:  "560001",
	}
}

func TestValidateAddressAccepts(t *testing.T) {
	assert.Nil(t, ValidateAddress(validAddress()))
}

func TestValidateAddressReportsAllFailures(t *testing.T) {
	fields := ValidateAddress(AddressForm{})
	// Every failing field is reported together, not just the first.
	for _, key := range []string{"full_name", "email", "phone", "address", "state", "pincode"} {
		assert.Contains(t, fields, key)
	}
}

func TestValidateAddressPhone(t *testing.T) {
	f := validAddress()

	f.Phone = "5876543210" // leading digit must be 6-9
	assert.Contains(t, ValidateAddress(f), "phone")

	f.Phone = "987654321" // 9 digits
	assert.Contains(t, ValidateAddress(f), "phone")

	f.Phone = "6000000000"
	assert.Nil(t, ValidateAddress(f))
}

func TestValidateAddressPincode(t *testing.T) {
	f := validAddress()

	f.Pincode = "060001" // leading zero
	assert.Contains(t, ValidateAddress(f), "pincode")

	f.Pincode = "56000" // 5 digits
	assert.Contains(t, ValidateAddress(f), "pincode")
}

func TestValidateAddressState(t *testing.T) {
	f := validAddress()
	f.State = "Atlantis"
	assert.Contains(t, ValidateAddress(f), "state")
}

func TestValidateAddressEmail(t *testing.T) {
	f := validAddress()
	f.Email = "not-an-email"
	assert.Contains(t, ValidateAddress(f), "email")
}

func TestValidatePaymentGatewayAndCOD(t *testing.T) {
	// The hosted gateway validates payment details out-of-band.
	assert.Nil(t, ValidatePayment(PaymentForm{Method: MethodGateway}))
	assert.Nil(t, ValidatePayment(PaymentForm{Method: MethodCOD}))
}

func TestValidatePaymentCard(t *testing.T) {
	f := PaymentForm{Method: MethodCard, CardNumber: "4111111111111111", Expiry: "09/27", CVV: "123"}
	assert.Nil(t, ValidatePayment(f))

	f.CardNumber = "4111"
	f.Expiry = "13/27"
	f.CVV = "12"
	fields := ValidatePayment(f)
	assert.Contains(t, fields, "card_number")
	assert.Contains(t, fields, "expiry")
	assert.Contains(t, fields, "cvv")
	// UPI fields are irrelevant to the card method
	assert.NotContains(t, fields, "upi_id")
}

func TestValidatePaymentUPI(t *testing.T) {
	assert.Nil(t, ValidatePayment(PaymentForm{Method: MethodUPI, UPIID: "asha.nair@okbank"}))

	fields := ValidatePayment(PaymentForm{Method: MethodUPI, UPIID: "no-provider"})
	assert.Contains(t, fields, "upi_id")
	assert.NotContains(t, fields, "card_number")
}

func TestValidatePaymentUnknownMethod(t *testing.T) {
	assert.Contains(t, ValidatePayment(PaymentForm{}), "method")
}
