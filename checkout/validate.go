package checkout

import "regexp"

var (
	emailRe   = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	mobileRe  = regexp.MustCompile(`^[6-9][0-9]{9}$`) // 10-digit Indian mobile
	pincodeRe = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	cardRe    = regexp.MustCompile(`^[0-9]{16}$`)
	expiryRe  = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`) // MM/YY
	cvvRe     = regexp.MustCompile(`^[0-9]{3}$`)
	upiRe     = regexp.MustCompile(`^[a-zA-Z0-9._\-]{2,}@[a-zA-Z]{2,}$`) // user@provider
)

// States selectable at checkout.
var States = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Delhi", "Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand",
	"Karnataka", "Kerala", "Madhya Pradesh", "Maharashtra", "Manipur",
	"Meghalaya", "Mizoram", "Nagaland", "Odisha", "Punjab", "Rajasthan",
	"Sikkim", "Tamil Nadu", "Telangana", "Tripura", "Uttar Pradesh",
	"Uttarakhand", "West Bengal",
}

func validState(s string) bool {
	for _, state := range States {
		if state == s {
			return true
		}
	}
	return false
}

type AddressForm struct {
	FullName string
	Email    string
	Phone    string
	Address  string
	State    string
	Pincode  string
}

// ValidateAddress checks every field so the user sees all failures at once,
// not just the first.
func ValidateAddress(f AddressForm) map[string]string {
	fields := make(map[string]string)
	if f.FullName == "" {
		fields["full_name"] = "full name is required"
	}
	if !emailRe.MatchString(f.Email) {
		fields["email"] = "enter a valid email address"
	}
	if !mobileRe.MatchString(f.Phone) {
		fields["phone"] = "enter a valid 10-digit mobile number"
	}
	if f.Address == "" {
		fields["address"] = "address is required"
	}
	if !validState(f.State) {
		fields["state"] = "select a state"
	}
	if !pincodeRe.MatchString(f.Pincode) {
		fields["pincode"] = "enter a valid 6-digit pincode"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

type PaymentMethod string

const (
	MethodGateway PaymentMethod = "gateway" // hosted gateway validates out-of-band
	MethodCard    PaymentMethod = "card"
	MethodUPI     PaymentMethod = "upi"
	MethodCOD     PaymentMethod = "cod"
)

type PaymentForm struct {
	Method     PaymentMethod
	CardNumber string
	Expiry     string
	CVV        string
	UPIID      string
}

// ValidatePayment validates only the fields relevant to the selected method.
func ValidatePayment(f PaymentForm) map[string]string {
	fields := make(map[string]string)
	switch f.Method {
	case MethodGateway, MethodCOD:
		// nothing to validate locally
	case MethodCard:
		if !cardRe.MatchString(f.CardNumber) {
			fields["card_number"] = "enter a valid 16-digit card number"
		}
		if !expiryRe.MatchString(f.Expiry) {
			fields["expiry"] = "enter expiry as MM/YY"
		}
		if !cvvRe.MatchString(f.CVV) {
			fields["cvv"] = "enter a valid 3-digit CVV"
		}
	case MethodUPI:
		if !upiRe.MatchString(f.UPIID) {
			fields["upi_id"] = "enter a valid UPI ID"
		}
	default:
		fields["method"] = "select a payment method"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
