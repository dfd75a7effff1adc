package komoju

import (
	"net/mail"
	"net/url"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kevin07696/komoju-client/internal/cardutil"
	pkgerrors "github.com/kevin07696/komoju-client/pkg/errors"
)

// formatPayment shapes a payment request into the provider's flat
// bracket-path parameter set. It never returns partial parameters: any
// missing or invalid field fails the whole request before the network
// is touched.
func formatPayment(req PaymentRequest, cfg *Config) (url.Values, error) {
	if req == nil {
		return nil, pkgerrors.NewValidationError("payment_type", "not a valid payment type")
	}
	return req.formatParams(cfg)
}

// baseParams builds the parameters shared by every payment method:
// amount, currency (JPY default), merchant order reference and the
// configured metadata pairs.
func baseParams(cfg *Config, amount decimal.Decimal, currency, orderNum string) (url.Values, error) {
	if !amount.IsPositive() {
		return nil, pkgerrors.NewValidationError("amount", `must specify an "amount" to charge`)
	}

	if currency == "" {
		currency = "JPY"
	}

	params := url.Values{}
	params.Set("amount", amount.String())
	params.Set("currency", currency)
	params.Set("external_order_num", orderRef(cfg, orderNum))
	for k, v := range cfg.Metadata {
		params.Set("metadata["+k+"]", v)
	}
	return params, nil
}

// orderRef resolves the external order number: explicit override, then
// the configured merchant id, then a freshly generated UUID.
func orderRef(cfg *Config, override string) string {
	if override != "" {
		return override
	}
	if cfg.MerchantID != "" {
		return cfg.MerchantID
	}
	return uuid.NewString()
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// validateCardDetails normalizes and validates raw card fields shared
// by direct charges and tokenization: Luhn-checked number, non-empty
// security code, and an expiry carrying exactly the keys "M" and "Y",
// compared as a sorted pair.
func validateCardDetails(rawNumber, rawCVV string, expiry Expiry) (number, cvv, month, year string, err error) {
	number = cardutil.StripSpaces(rawNumber)
	if !cardutil.ValidNumber(number) {
		return "", "", "", "", pkgerrors.NewValidationError("card", "not a valid credit card number")
	}

	cvv = cardutil.StripSpaces(rawCVV)
	if cvv == "" {
		return "", "", "", "", pkgerrors.NewValidationError("cvv", "must include the card security code")
	}

	if len(expiry) == 0 {
		return "", "", "", "", pkgerrors.NewValidationError("expiry", "must specify an expiry date")
	}
	keys := make([]string, 0, len(expiry))
	for k := range expiry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "M" || keys[1] != "Y" {
		return "", "", "", "", pkgerrors.NewValidationError("expiry", `must include "M" and "Y" in expiry date`)
	}

	return number, cvv, expiry["M"], expiry["Y"], nil
}

func (p *CreditCardPayment) formatParams(cfg *Config) (url.Values, error) {
	number, cvv, month, year, err := validateCardDetails(p.Number, p.CVV, p.Expiry)
	if err != nil {
		return nil, err
	}

	params, err := baseParams(cfg, p.Amount, p.Currency, p.ExternalOrderNum)
	if err != nil {
		return nil, err
	}

	params.Set("payment_details[type]", PaymentTypeCreditCard)
	params.Set("payment_details[number]", number)
	params.Set("payment_details[verification_value]", cvv)
	params.Set("payment_details[month]", month)
	params.Set("payment_details[year]", year)
	if p.FamilyName != "" {
		params.Set("payment_details[family_name]", p.FamilyName)
	}
	if p.GivenName != "" {
		params.Set("payment_details[given_name]", p.GivenName)
	}

	if p.Capture != nil {
		params.Set("capture", strconv.FormatBool(*p.Capture))
	}
	if p.Tax.IsPositive() {
		params.Set("tax", p.Tax.String())
	}
	if p.Description != "" {
		params.Set("description", p.Description)
	}
	if p.Locale != "" {
		params.Set("locale", p.Locale)
	}

	return params, nil
}

func (p *KonbiniPayment) formatParams(cfg *Config) (url.Values, error) {
	if !validEmail(p.Email) {
		return nil, pkgerrors.NewValidationError("email", "not a valid e-mail address")
	}
	if !konbiniStores[p.Store] {
		return nil, pkgerrors.NewValidationError("store", "not a valid konbini name")
	}

	params, err := baseParams(cfg, p.Amount, p.Currency, p.ExternalOrderNum)
	if err != nil {
		return nil, err
	}

	params.Set("payment_details[type]", PaymentTypeKonbini)
	params.Set("payment_details[email]", p.Email)
	params.Set("payment_details[store]", string(p.Store))
	if p.Phone != "" {
		params.Set("payment_details[phone]", p.Phone)
	}

	return params, nil
}

func (p *BankTransferPayment) formatParams(cfg *Config) (url.Values, error) {
	if !validEmail(p.Email) {
		return nil, pkgerrors.NewValidationError("email", "not a valid e-mail address")
	}
	if p.Phone == "" {
		return nil, pkgerrors.NewValidationError("phone", "not a valid phone number")
	}
	if p.LastName == "" {
		return nil, pkgerrors.NewValidationError("last_name", "last name must be specified")
	}
	if p.LastNameKana == "" {
		return nil, pkgerrors.NewValidationError("last_name_kana", "last name kana must be specified")
	}
	if p.FirstName == "" {
		return nil, pkgerrors.NewValidationError("first_name", "first name must be specified")
	}
	if p.FirstNameKana == "" {
		return nil, pkgerrors.NewValidationError("first_name_kana", "first name kana must be specified")
	}

	params, err := baseParams(cfg, p.Amount, p.Currency, p.ExternalOrderNum)
	if err != nil {
		return nil, err
	}

	params.Set("payment_details[type]", p.PaymentType())
	params.Set("payment_details[email]", p.Email)
	params.Set("payment_details[phone]", p.Phone)
	params.Set("payment_details[family_name]", p.LastName)
	params.Set("payment_details[family_name_kana]", p.LastNameKana)
	params.Set("payment_details[given_name]", p.FirstName)
	params.Set("payment_details[given_name_kana]", p.FirstNameKana)

	return params, nil
}

func (p *BitCashPayment) formatParams(cfg *Config) (url.Values, error) {
	number := cardutil.StripSpaces(p.Number)
	if number == "" {
		return nil, pkgerrors.NewValidationError("card", "not a valid prepaid number")
	}

	params, err := baseParams(cfg, p.Amount, p.Currency, p.ExternalOrderNum)
	if err != nil {
		return nil, err
	}

	params.Set("payment_details[type]", PaymentTypeBitCash)
	params.Set("payment_details[prepaid_number]", number)
	if p.Email != "" {
		params.Set("email", p.Email)
	}

	return params, nil
}

func (p *PrepaidPayment) formatParams(cfg *Config) (url.Values, error) {
	if !prepaidTypes[p.Type] {
		return nil, pkgerrors.NewValidationError("payment_type", "unknown payment type")
	}

	number := cardutil.StripSpaces(p.Number)
	if number == "" {
		return nil, pkgerrors.NewValidationError("card", "not a valid prepaid number")
	}

	params, err := baseParams(cfg, p.Amount, p.Currency, p.ExternalOrderNum)
	if err != nil {
		return nil, err
	}

	params.Set("payment_details[type]", string(p.Type))
	params.Set("payment_details[prepaid_number]", number)
	if p.Email != "" {
		params.Set("email", p.Email)
	}

	return params, nil
}
