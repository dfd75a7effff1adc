package komoju

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	pkgerrors "github.com/kevin07696/komoju-client/pkg/errors"
)

// ListOptions carries optional pagination for list operations
type ListOptions struct {
	Page    int
	PerPage int
}

func (o *ListOptions) values() url.Values {
	if o == nil {
		return nil
	}
	params := url.Values{}
	if o.Page > 0 {
		params.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(o.PerPage))
	}
	if len(params) == 0 {
		return nil
	}
	return params
}

// ListPayments retrieves a page of payments
func (c *Client) ListPayments(ctx context.Context, opts *ListOptions) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodGet, paymentResource, opts.values())
}

// ShowPayment retrieves a single payment by id
func (c *Client) ShowPayment(ctx context.Context, paymentID string) (map[string]interface{}, error) {
	if paymentID == "" {
		return nil, pkgerrors.NewValidationError("payment_id", "payment ID must be specified")
	}
	return c.do(ctx, http.MethodGet, paymentResource+"/"+url.PathEscape(paymentID), nil)
}

// CreatePayment formats the payment request for its payment method and
// submits it. Validation failures surface before any network call.
func (c *Client) CreatePayment(ctx context.Context, req PaymentRequest) (map[string]interface{}, error) {
	params, err := formatPayment(req, c.config)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, paymentResource, params)
}

// CancelPayment cancels an authorized or pending payment
func (c *Client) CancelPayment(ctx context.Context, paymentID string) (map[string]interface{}, error) {
	if paymentID == "" {
		return nil, pkgerrors.NewValidationError("payment_id", "payment ID must be specified")
	}
	return c.do(ctx, http.MethodPost, paymentResource+"/"+url.PathEscape(paymentID)+"/cancel", nil)
}

// RefundPayment refunds a captured payment. The provider implements
// refunds as a cancel; only credit card refunds carry an amount body.
func (c *Client) RefundPayment(ctx context.Context, req *RefundRequest) (map[string]interface{}, error) {
	if req == nil || req.PaymentID == "" {
		return nil, pkgerrors.NewValidationError("payment_id", "payment ID must be specified")
	}
	if !req.Amount.IsPositive() {
		return nil, pkgerrors.NewValidationError("amount", `must specify an "amount" to refund`)
	}

	var params url.Values
	if req.PaymentType == PaymentTypeCreditCard {
		params = url.Values{}
		params.Set("amount", req.Amount.String())
	}

	return c.do(ctx, http.MethodPost, paymentResource+"/"+url.PathEscape(req.PaymentID)+"/cancel", params)
}

// CapturePayment captures a previously authorized payment
func (c *Client) CapturePayment(ctx context.Context, paymentID string) (map[string]interface{}, error) {
	if paymentID == "" {
		return nil, pkgerrors.NewValidationError("payment_id", "payment ID must be specified")
	}
	return c.do(ctx, http.MethodPost, paymentResource+"/"+url.PathEscape(paymentID)+"/capture", nil)
}
