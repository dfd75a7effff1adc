package komoju

import (
	"context"
	"net/http"
	"net/url"

	pkgerrors "github.com/kevin07696/komoju-client/pkg/errors"
)

// ListEvents retrieves a page of provider events
func (c *Client) ListEvents(ctx context.Context, opts *ListOptions) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodGet, eventResource, opts.values())
}

// ShowEvent retrieves a single event by id
func (c *Client) ShowEvent(ctx context.Context, eventID string) (map[string]interface{}, error) {
	if eventID == "" {
		return nil, pkgerrors.NewValidationError("event_id", "event ID must be specified")
	}
	return c.do(ctx, http.MethodGet, eventResource+"/"+url.PathEscape(eventID), nil)
}
