package komoju

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/kevin07696/komoju-client/pkg/errors"
)

// recordedRequest captures what the server saw for assertion after the
// call returns.
type recordedRequest struct {
	Method      string
	Path        string
	Query       string
	Body        string
	ContentType string
	Username    string
	Password    string
	HasAuth     bool
}

func newTestClient(t *testing.T, status int, responseBody string) (*Client, *recordedRequest) {
	t.Helper()

	recorded := &recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorded.Method = r.Method
		recorded.Path = r.URL.Path
		recorded.Query = r.URL.RawQuery
		recorded.ContentType = r.Header.Get("Content-Type")
		recorded.Username, recorded.Password, recorded.HasAuth = r.BasicAuth()
		body, _ := io.ReadAll(r.Body)
		recorded.Body = string(body)

		w.WriteHeader(status)
		if responseBody != "" {
			w.Write([]byte(responseBody))
		}
	}))
	t.Cleanup(server.Close)

	cfg := testConfig()
	cfg.BaseURL = server.URL

	client, err := NewClient(cfg, server.Client(), nil)
	require.NoError(t, err)
	return client, recorded
}

func TestClient_BasicAuth(t *testing.T) {
	client, recorded := newTestClient(t, http.StatusOK, `{"id":"pay_1"}`)

	_, err := client.ShowPayment(context.Background(), "pay_1")
	require.NoError(t, err)

	assert.True(t, recorded.HasAuth)
	assert.Equal(t, "sk_test_D7RAc0Wo", recorded.Username)
	assert.Empty(t, recorded.Password)
}

func TestListPayments(t *testing.T) {
	client, recorded := newTestClient(t, http.StatusOK, `{"resource":"list","data":[]}`)

	_, err := client.ListPayments(context.Background(), &ListOptions{Page: 2, PerPage: 25})
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, recorded.Method)
	assert.Equal(t, "/v1/payments", recorded.Path)
	assert.Equal(t, "page=2&per_page=25", recorded.Query)
}

func TestListPayments_NoOptions(t *testing.T) {
	client, recorded := newTestClient(t, http.StatusOK, `{"resource":"list","data":[]}`)

	_, err := client.ListPayments(context.Background(), nil)
	require.NoError(t, err)

	assert.Empty(t, recorded.Query)
}

func TestShowPayment(t *testing.T) {
	client, recorded := newTestClient(t, http.StatusOK, `{"id":"pay_1","status":"captured"}`)

	resp, err := client.ShowPayment(context.Background(), "pay_1")
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, recorded.Method)
	assert.Equal(t, "/v1/payments/pay_1", recorded.Path)
	assert.Equal(t, "captured", resp["status"])
}

func TestShowPayment_EmptyID(t *testing.T) {
	client, recorded := newTestClient(t, http.StatusOK, `{"id":"pay_1"}`)

	_, err := client.ShowPayment(context.Background(), "")
	requireValidationError(t, err, "payment_id")
	assert.Empty(t, recorded.Method, "no request should be sent")
}

func TestCreatePayment(t *testing.T) {
	client, recorded := newTestClient(t, http.StatusOK, `{"id":"pay_1","status":"authorized"}`)

	_, err := client.CreatePayment(context.Background(), validCardPayment())
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, recorded.Method)
	assert.Equal(t, "/v1/payments", recorded.Path)
	assert.Equal(t, "application/x-www-form-urlencoded", recorded.ContentType)
	assert.Contains(t, recorded.Body, "amount=4000")
	assert.Contains(t, recorded.Body, "payment_details%5Bnumber%5D=4242424242424242")
	assert.Contains(t, recorded.Body, "payment_details%5Btype%5D=credit_card")
}

func TestCreatePayment_ValidationBeforeNetwork(t *testing.T) {
	client, recorded := newTestClient(t, http.StatusOK, `{"id":"pay_1"}`)

	bad := validCardPayment()
	bad.Number = "1234"
	_, err := client.CreatePayment(context.Background(), bad)

	requireValidationError(t, err, "card")
	assert.Empty(t, recorded.Method, "no request should be sent")
}

func TestCancelPayment(t *testing.T) {
	client, recorded := newTestClient(t, http.StatusOK, `{"id":"pay_1","status":"cancelled"}`)

	_, err := client.CancelPayment(context.Background(), "pay_1")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, recorded.Method)
	assert.Equal(t, "/v1/payments/pay_1/cancel", recorded.Path)
	assert.Empty(t, recorded.Body)
}

func TestRefundPayment_CreditCardCarriesAmount(t *testing.T) {
	client, recorded := newTestClient(t, http.StatusOK, `{"id":"pay_1","status":"refunded"}`)

	_, err := client.RefundPayment(context.Background(), &RefundRequest{
		PaymentID:   "pay_1",
		PaymentType: PaymentTypeCreditCard,
		Amount:      decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1/payments/pay_1/cancel", recorded.Path)
	assert.Equal(t, "amount=1000", recorded.Body)
}

func TestRefundPayment_NonCardOmitsAmount(t *testing.T) {
	client, recorded := newTestClient(t, http.StatusOK, `{"id":"pay_1","status":"refunded"}`)

	_, err := client.RefundPayment(context.Background(), &RefundRequest{
		PaymentID:   "pay_1",
		PaymentType: PaymentTypeKonbini,
		Amount:      decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1/payments/pay_1/cancel", recorded.Path)
	assert.Empty(t, recorded.Body)
}

func TestRefundPayment_Validation(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, `{"id":"pay_1"}`)

	_, err := client.RefundPayment(context.Background(), nil)
	requireValidationError(t, err, "payment_id")

	_, err = client.RefundPayment(context.Background(), &RefundRequest{
		PaymentID:   "pay_1",
		PaymentType: PaymentTypeCreditCard,
	})
	requireValidationError(t, err, "amount")
}

func TestCapturePayment(t *testing.T) {
	client, recorded := newTestClient(t, http.StatusOK, `{"id":"pay_1","status":"captured"}`)

	_, err := client.CapturePayment(context.Background(), "pay_1")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, recorded.Method)
	assert.Equal(t, "/v1/payments/pay_1/capture", recorded.Path)
}

func TestCreateCustomer(t *testing.T) {
	client, recorded := newTestClient(t, http.StatusOK, `{"id":"cus_1"}`)

	_, err := client.CreateCustomer(context.Background(), &CustomerRequest{
		Email: "taro@example.com",
		Token: "tok_abc",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, recorded.Method)
	assert.Equal(t, "/v1/customers", recorded.Path)
	assert.Contains(t, recorded.Body, "email=taro%40example.com")
	assert.Contains(t, recorded.Body, "payment_details=tok_abc")
}

func TestCreateCustomer_RequiresEmail(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, `{"id":"cus_1"}`)

	_, err := client.CreateCustomer(context.Background(), &CustomerRequest{Token: "tok_abc"})
	requireValidationError(t, err, "email")
}

func TestUpdateCustomer(t *testing.T) {
	client, recorded := newTestClient(t, http.StatusOK, `{"id":"cus_1"}`)

	_, err := client.UpdateCustomer(context.Background(), "cus_1", &CustomerRequest{Token: "tok_new"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, recorded.Method)
	assert.Equal(t, "/v1/customers/cus_1", recorded.Path)
	assert.Contains(t, recorded.Body, "payment_details=tok_new")
}

func TestDeleteCustomer(t *testing.T) {
	client, recorded := newTestClient(t, http.StatusNoContent, "")

	resp, err := client.DeleteCustomer(context.Background(), "cus_1")
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, recorded.Method)
	assert.Equal(t, "/v1/customers/cus_1", recorded.Path)
	assert.Empty(t, resp)
}

func TestCreateToken(t *testing.T) {
	client, recorded := newTestClient(t, http.StatusOK, `{"id":"tok_1"}`)

	_, err := client.CreateToken(context.Background(), &TokenRequest{
		Number: "4242 4242 4242 4242",
		CVV:    "123",
		Expiry: NewExpiry("12", "2030"),
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, recorded.Method)
	assert.Equal(t, "/v1/tokens", recorded.Path)
	assert.Contains(t, recorded.Body, "payment_details%5Bnumber%5D=4242424242424242")
}

func TestListEvents(t *testing.T) {
	client, recorded := newTestClient(t, http.StatusOK, `{"resource":"list","data":[]}`)

	_, err := client.ListEvents(context.Background(), &ListOptions{PerPage: 10})
	require.NoError(t, err)

	assert.Equal(t, "/v1/events", recorded.Path)
	assert.Equal(t, "per_page=10", recorded.Query)
}

func TestClient_ProviderError(t *testing.T) {
	client, _ := newTestClient(t, http.StatusPaymentRequired,
		`{"error":{"code":"card_declined","message":"declined","param":""}}`)

	_, err := client.CreatePayment(context.Background(), validCardPayment())

	var pErr *pkgerrors.PaymentError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, "card_declined", pErr.Code)
	assert.Equal(t, "Card declined.", pErr.Message)
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	cfg := testConfig()
	cfg.BaseURL = server.URL

	client, err := NewClient(cfg, nil, nil)
	require.NoError(t, err)

	_, err = client.ShowPayment(context.Background(), "pay_1")

	var tErr *pkgerrors.TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, "there was a problem, please try again", tErr.Error())
	assert.Error(t, errors.Unwrap(tErr), "underlying cause must be preserved")
}

func TestClient_UnrecognizedResponse(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, `{"unexpected":"shape"}`)

	_, err := client.ShowPayment(context.Background(), "pay_1")

	var uErr *pkgerrors.UnrecognizedResponseError
	require.ErrorAs(t, err, &uErr)
	assert.Equal(t, http.StatusOK, uErr.StatusCode)
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(nil, nil, nil)
	assert.Error(t, err)

	cfg := DefaultConfig()
	_, err = NewClient(cfg, nil, nil)
	assert.Error(t, err, "missing secret key must be rejected")
}
