package komoju

import (
	"context"
	"net/http"
	"net/url"

	pkgerrors "github.com/kevin07696/komoju-client/pkg/errors"
)

// CustomerRequest carries the fields for creating or updating a
// customer. Token, when set, attaches tokenized payment details.
type CustomerRequest struct {
	Email    string
	Token    string
	Metadata map[string]string
}

// formatParams shapes the customer request. Email is required on
// create and optional on update, but is always shape-validated when
// present.
func (r *CustomerRequest) formatParams(cfg *Config, emailRequired bool) (url.Values, error) {
	if r == nil {
		return nil, pkgerrors.NewValidationError("customer", "customer request must be specified")
	}
	if emailRequired && r.Email == "" {
		return nil, pkgerrors.NewValidationError("email", "not a valid e-mail address")
	}
	if r.Email != "" && !validEmail(r.Email) {
		return nil, pkgerrors.NewValidationError("email", "not a valid e-mail address")
	}

	params := url.Values{}
	if r.Email != "" {
		params.Set("email", r.Email)
	}
	if r.Token != "" {
		params.Set("payment_details", r.Token)
	}
	for k, v := range cfg.Metadata {
		params.Set("metadata["+k+"]", v)
	}
	for k, v := range r.Metadata {
		params.Set("metadata["+k+"]", v)
	}
	return params, nil
}

// ListCustomers retrieves a page of customers
func (c *Client) ListCustomers(ctx context.Context, opts *ListOptions) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodGet, customerResource, opts.values())
}

// ShowCustomer retrieves a single customer by id
func (c *Client) ShowCustomer(ctx context.Context, customerID string) (map[string]interface{}, error) {
	if customerID == "" {
		return nil, pkgerrors.NewValidationError("customer_id", "customer ID must be specified")
	}
	return c.do(ctx, http.MethodGet, customerResource+"/"+url.PathEscape(customerID), nil)
}

// CreateCustomer creates a customer
func (c *Client) CreateCustomer(ctx context.Context, req *CustomerRequest) (map[string]interface{}, error) {
	params, err := req.formatParams(c.config, true)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, customerResource, params)
}

// UpdateCustomer updates an existing customer
func (c *Client) UpdateCustomer(ctx context.Context, customerID string, req *CustomerRequest) (map[string]interface{}, error) {
	if customerID == "" {
		return nil, pkgerrors.NewValidationError("customer_id", "customer ID must be specified")
	}
	params, err := req.formatParams(c.config, false)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPatch, customerResource+"/"+url.PathEscape(customerID), params)
}

// DeleteCustomer deletes a customer
func (c *Client) DeleteCustomer(ctx context.Context, customerID string) (map[string]interface{}, error) {
	if customerID == "" {
		return nil, pkgerrors.NewValidationError("customer_id", "customer ID must be specified")
	}
	return c.do(ctx, http.MethodDelete, customerResource+"/"+url.PathEscape(customerID), nil)
}
