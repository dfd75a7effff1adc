package komoju

import (
	"fmt"
	"strings"

	pkgerrors "github.com/kevin07696/komoju-client/pkg/errors"
)

// errorCodeInfo describes one provider error code: the display
// template (0 or 1 "%s" slots filled from the payload's param) and how
// the error should be categorized.
type errorCodeInfo struct {
	Template    string
	Category    pkgerrors.ErrorCategory
	IsRetriable bool
}

// errorCatalog maps provider error codes to display templates. Codes
// not present here fall back to the payload's own message verbatim.
var errorCatalog = map[string]errorCodeInfo{
	// Request-shape and HTTP-level errors
	"bad_request": {
		Template: "The server cannot or will not process the request due to something that is perceived to be a client error.",
		Category: pkgerrors.CategoryInvalidRequest,
	},
	"unauthorized": {
		Template: "User authorization failed.",
		Category: pkgerrors.CategoryNotAllowed,
	},
	"not_found": {
		Template: "The requested resource could not be found but may be available again in the future.",
		Category: pkgerrors.CategoryInvalidRequest,
	},
	"internal_server_error": {
		Template:    "We're sorry but something went wrong. Please try your request again.",
		Category:    pkgerrors.CategorySystemError,
		IsRetriable: true,
	},
	"forbidden": {
		Template: "You are not authorized to perform that action.",
		Category: pkgerrors.CategoryNotAllowed,
	},
	"unprocessable_entity": {
		Template: "The request was well-formed but was unable to be followed due to semantic errors.",
		Category: pkgerrors.CategoryInvalidRequest,
	},
	"locked": {
		Template:    "Processing.",
		Category:    pkgerrors.CategorySystemError,
		IsRetriable: true,
	},
	"bad_gateway": {
		Template:    "We are unable to process your request due to an invalid response from the upstream server.",
		Category:    pkgerrors.CategorySystemError,
		IsRetriable: true,
	},
	"gateway_timeout": {
		Template:    "When attempting to process your payment, we encountered a gateway timeout. Fear not, we have not processed the payment. Please try your payment again.",
		Category:    pkgerrors.CategorySystemError,
		IsRetriable: true,
	},
	"service_unavailable": {
		Template:    "The server is down for maintenance. Please try again later.",
		Category:    pkgerrors.CategorySystemError,
		IsRetriable: true,
	},
	"request_failed": {
		Template: "The request failed.",
		Category: pkgerrors.CategorySystemError,
	},

	// Parameter errors
	"invalid_payment_type": {
		Template: "Payment method was invalid. %s is not a supported payment type.",
		Category: pkgerrors.CategoryInvalidRequest,
	},
	"invalid_token": {
		Template: "The token you requested is invalid.",
		Category: pkgerrors.CategoryInvalidRequest,
	},
	"invalid_currency": {
		Template: "The currency you requested is invalid.",
		Category: pkgerrors.CategoryInvalidRequest,
	},
	"invalid_parameter": {
		Template: "The value of %s is invalid.",
		Category: pkgerrors.CategoryInvalidRequest,
	},
	"missing_parameter": {
		Template: "A required parameter (%s) is missing.",
		Category: pkgerrors.CategoryInvalidRequest,
	},

	// Operation-state errors
	"not_refundable": {
		Template: "The payment you requested is not refundable.",
		Category: pkgerrors.CategoryNotAllowed,
	},
	"not_capturable": {
		Template: "The payment you requested is not capturable.",
		Category: pkgerrors.CategoryNotAllowed,
	},
	"not_cancellable": {
		Template: "This payment is noncancellable.",
		Category: pkgerrors.CategoryNotAllowed,
	},
	"fraudulent": {
		Template: "This payment is fraudulent.",
		Category: pkgerrors.CategoryFraud,
	},

	// Card and account decline reasons
	"insufficient_funds": {
		Template:    "Insufficient funds.",
		Category:    pkgerrors.CategoryInsufficientFunds,
		IsRetriable: true,
	},
	"used_number": {
		Template: "Used number.",
		Category: pkgerrors.CategoryInvalidCard,
	},
	"card_declined": {
		Template: "Card declined.",
		Category: pkgerrors.CategoryDeclined,
	},
	"invalid_password": {
		Template: "Invalid password.",
		Category: pkgerrors.CategoryInvalidCard,
	},
	"bad_verification_value": {
		Template:    "Bad verification value.",
		Category:    pkgerrors.CategoryInvalidCard,
		IsRetriable: true,
	},
	"exceeds_limit": {
		Template: "Exceeds limit.",
		Category: pkgerrors.CategoryDeclined,
	},
	"card_expired": {
		Template: "Card expired.",
		Category: pkgerrors.CategoryExpiredCard,
	},
	"invalid_number": {
		Template: "The number you requested is invalid.",
		Category: pkgerrors.CategoryInvalidCard,
	},
	"invalid_account": {
		Template: "Invalid account.",
		Category: pkgerrors.CategoryInvalidCard,
	},
}

// resolveError converts a provider error payload into a PaymentError
// with a display message. A known code uses its catalog template,
// substituting the payload's param when the template has a slot; an
// unknown code surfaces the payload's own message verbatim.
func resolveError(payload *errorPayload) *pkgerrors.PaymentError {
	info, known := errorCatalog[payload.Code]
	if !known {
		return &pkgerrors.PaymentError{
			Code:     payload.Code,
			Message:  payload.Message,
			Param:    payload.Param,
			Category: pkgerrors.CategoryDeclined,
		}
	}

	message := info.Template
	if payload.Param != "" && strings.Contains(info.Template, "%s") {
		message = fmt.Sprintf(info.Template, payload.Param)
	}

	return &pkgerrors.PaymentError{
		Code:        payload.Code,
		Message:     message,
		Param:       payload.Param,
		IsRetriable: info.IsRetriable,
		Category:    info.Category,
	}
}
