package komoju

import (
	"net/url"

	"github.com/shopspring/decimal"
)

// Payment type discriminators accepted by the provider
const (
	PaymentTypeCreditCard   = "credit_card"
	PaymentTypeKonbini      = "konbini"
	PaymentTypeBankTransfer = "bank_transfer"
	PaymentTypePayEasy      = "pay_easy"
	PaymentTypeBitCash      = "bit_cash"
	PaymentTypeWebMoney     = "web_money"
	PaymentTypeNanaco       = "nanaco"
	PaymentTypeNetCash      = "net_cash"
)

// PaymentRequest is a payment creation request for one specific
// payment method. Each variant carries only its own fields and knows
// how to shape itself into the provider's flat parameter set.
type PaymentRequest interface {
	// PaymentType returns the provider's payment_type discriminator
	PaymentType() string

	formatParams(cfg *Config) (url.Values, error)
}

// Expiry is a credit card expiry date. The provider contract requires
// exactly the keys "M" (month) and "Y" (year); any other key set is
// rejected at formatting time.
type Expiry map[string]string

// NewExpiry builds a well-formed Expiry
func NewExpiry(month, year string) Expiry {
	return Expiry{"M": month, "Y": year}
}

// CreditCardPayment is a direct card charge
type CreditCardPayment struct {
	Amount   decimal.Decimal
	Currency string // defaults to JPY
	Number   string // card number, user-entered spacing tolerated
	CVV      string
	Expiry   Expiry

	// Optional cardholder name
	FamilyName string
	GivenName  string

	// Optional charge settings
	Capture     *bool
	Tax         decimal.Decimal
	Description string
	Locale      string

	// ExternalOrderNum overrides the configured merchant reference
	ExternalOrderNum string
}

func (p *CreditCardPayment) PaymentType() string { return PaymentTypeCreditCard }

// KonbiniStore identifies a supported convenience-store chain
type KonbiniStore string

const (
	StoreDailyYamazaki KonbiniStore = "daily-yamazaki"
	StoreFamilyMart    KonbiniStore = "family-mart"
	StoreLawson        KonbiniStore = "lawson"
	StoreMinistop      KonbiniStore = "ministop"
)

var konbiniStores = map[KonbiniStore]bool{
	StoreDailyYamazaki: true,
	StoreFamilyMart:    true,
	StoreLawson:        true,
	StoreMinistop:      true,
}

// KonbiniPayment is a convenience-store cash payment
type KonbiniPayment struct {
	Amount   decimal.Decimal
	Currency string
	Email    string
	Store    KonbiniStore
	Phone    string // optional

	ExternalOrderNum string
}

func (p *KonbiniPayment) PaymentType() string { return PaymentTypeKonbini }

// BankTransferPayment is a bank transfer or pay-easy payment. Both
// methods share the same parameter shape; PayEasy selects the
// discriminator.
type BankTransferPayment struct {
	Amount   decimal.Decimal
	Currency string
	Email    string
	Phone    string

	LastName      string
	LastNameKana  string
	FirstName     string
	FirstNameKana string

	PayEasy bool

	ExternalOrderNum string
}

func (p *BankTransferPayment) PaymentType() string {
	if p.PayEasy {
		return PaymentTypePayEasy
	}
	return PaymentTypeBankTransfer
}

// BitCashPayment is a BitCash prepaid-voucher payment
type BitCashPayment struct {
	Amount   decimal.Decimal
	Currency string
	Number   string // prepaid card number
	Email    string // optional

	ExternalOrderNum string
}

func (p *BitCashPayment) PaymentType() string { return PaymentTypeBitCash }

// PrepaidType selects one of the prepaid-voucher methods that share a
// single parameter shape
type PrepaidType string

const (
	PrepaidWebMoney PrepaidType = PaymentTypeWebMoney
	PrepaidNanaco   PrepaidType = PaymentTypeNanaco
	PrepaidNetCash  PrepaidType = PaymentTypeNetCash
)

var prepaidTypes = map[PrepaidType]bool{
	PrepaidWebMoney: true,
	PrepaidNanaco:   true,
	PrepaidNetCash:  true,
}

// PrepaidPayment is a WebMoney, Nanaco or NetCash payment
type PrepaidPayment struct {
	Amount   decimal.Decimal
	Currency string
	Number   string // prepaid card number
	Email    string // optional
	Type     PrepaidType

	ExternalOrderNum string
}

func (p *PrepaidPayment) PaymentType() string { return string(p.Type) }

// RefundRequest identifies a payment to refund. The provider
// implements refunds as a POST to the cancel sub-resource; the amount
// body is only sent for credit card payments.
type RefundRequest struct {
	PaymentID   string
	PaymentType string
	Amount      decimal.Decimal
}
