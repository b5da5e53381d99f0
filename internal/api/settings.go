package api

import (
	"context"

	"links54_client/internal/model"
)

func (c *Client) GetSettings(ctx context.Context) (*model.Settings, error) {
	var settings model.Settings
	if err := c.get(ctx, "/user/settings", &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (c *Client) UpdateSettings(ctx context.Context, settings model.Settings) error {
	return c.put(ctx, "/user/settings", settings, nil)
}

func (c *Client) SubmitReport(ctx context.Context, report model.Report) error {
	return c.post(ctx, "/reports", report, nil)
}
