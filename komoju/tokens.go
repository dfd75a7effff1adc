package komoju

import (
	"context"
	"net/http"
	"net/url"

	pkgerrors "github.com/kevin07696/komoju-client/pkg/errors"
)

// TokenRequest carries raw card details for one-time tokenization.
// The resulting token can be attached to a customer in place of card
// data.
type TokenRequest struct {
	Number string
	CVV    string
	Expiry Expiry

	FamilyName string
	GivenName  string
}

func (r *TokenRequest) formatParams() (url.Values, error) {
	if r == nil {
		return nil, pkgerrors.NewValidationError("token", "token request must be specified")
	}

	number, cvv, month, year, err := validateCardDetails(r.Number, r.CVV, r.Expiry)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("payment_details[type]", PaymentTypeCreditCard)
	params.Set("payment_details[number]", number)
	params.Set("payment_details[verification_value]", cvv)
	params.Set("payment_details[month]", month)
	params.Set("payment_details[year]", year)
	if r.FamilyName != "" {
		params.Set("payment_details[family_name]", r.FamilyName)
	}
	if r.GivenName != "" {
		params.Set("payment_details[given_name]", r.GivenName)
	}
	return params, nil
}

// CreateToken tokenizes card details
func (c *Client) CreateToken(ctx context.Context, req *TokenRequest) (map[string]interface{}, error) {
	params, err := req.formatParams()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, tokenResource, params)
}

// ShowToken retrieves a token by id
func (c *Client) ShowToken(ctx context.Context, tokenID string) (map[string]interface{}, error) {
	if tokenID == "" {
		return nil, pkgerrors.NewValidationError("token_id", "token ID must be specified")
	}
	return c.do(ctx, http.MethodGet, tokenResource+"/"+url.PathEscape(tokenID), nil)
}
