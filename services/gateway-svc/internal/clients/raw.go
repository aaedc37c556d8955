package clients

import (
	"context"
	"encoding/json"

	"mapfnet/pkg/client"
)

// postRaw forwards body verbatim to path and returns the backend's response
// body verbatim, without decoding it into a typed struct. The gateway uses
// this for routes whose payload shape is owned by the backend service
// (solve requests, validation reports, audit/history records) so that a
// backend-internal field addition doesn't require a matching gateway change.
func postRaw(ctx context.Context, hc *client.Client, path string, body json.RawMessage) (json.RawMessage, error) {
	var out json.RawMessage
	if err := hc.PostJSON(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}
