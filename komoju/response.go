package komoju

import (
	"encoding/json"
	"net/http"

	pkgerrors "github.com/kevin07696/komoju-client/pkg/errors"
)

// errorPayload is the provider's structured error shape
type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param"`
}

// parseResponse decodes a provider response body and classifies it:
// a top-level "id" (single resource) or "resource" (list) means
// success, a top-level "error" is resolved through the error catalog,
// anything else is an unrecognized response. A body that is not valid
// JSON fails with a DecodeError.
func parseResponse(statusCode int, body []byte) (map[string]interface{}, error) {
	// Deletions answer with no content
	if statusCode == http.StatusNoContent {
		return map[string]interface{}{}, nil
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &pkgerrors.DecodeError{Err: err}
	}

	if _, ok := parsed["id"]; ok {
		return parsed, nil
	}
	if _, ok := parsed["resource"]; ok {
		return parsed, nil
	}

	if raw, ok := parsed["error"]; ok {
		return nil, resolveError(decodeErrorPayload(raw))
	}

	return nil, &pkgerrors.UnrecognizedResponseError{StatusCode: statusCode}
}

// decodeErrorPayload pulls code/message/param out of the decoded error
// value, tolerating missing or mistyped fields.
func decodeErrorPayload(raw interface{}) *errorPayload {
	payload := &errorPayload{}
	fields, ok := raw.(map[string]interface{})
	if !ok {
		return payload
	}
	if code, ok := fields["code"].(string); ok {
		payload.Code = code
	}
	if message, ok := fields["message"].(string); ok {
		payload.Message = message
	}
	if param, ok := fields["param"].(string); ok {
		payload.Param = param
	}
	return payload
}
