package api

import (
	"context"
	"net/url"

	"links54_client/internal/model"
)

func (c *Client) SendConnectionRequest(ctx context.Context, req model.ConnectionRequest) error {
	return c.post(ctx, "/connections/requests", req, nil)
}

func (c *Client) RemoveConnection(ctx context.Context, connectionID, note string) error {
	path := "/connections/" + url.PathEscape(connectionID)
	return c.delete(ctx, path, model.RemoveConnectionRequest{Note: note}, nil)
}
