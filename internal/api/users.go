package api

import (
	"context"
	"net/url"

	"links54_client/internal/model"
)

func (c *Client) GetPublicProfile(ctx context.Context, userID string) (*model.Profile, error) {
	var profile model.Profile
	if err := c.get(ctx, "/users/"+url.PathEscape(userID)+"/public", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) BlockUser(ctx context.Context, userID string) error {
	return c.post(ctx, "/users/"+url.PathEscape(userID)+"/block", nil, nil)
}

func (c *Client) UnblockUser(ctx context.Context, userID string) error {
	return c.delete(ctx, "/users/"+url.PathEscape(userID)+"/block", nil, nil)
}

func (c *Client) GetFundingProject(ctx context.Context, id string) (*model.FundingProject, error) {
	var project model.FundingProject
	if err := c.get(ctx, "/funding/projects/"+url.PathEscape(id), &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) GetNeed(ctx context.Context, id string) (*model.Need, error) {
	var need model.Need
	if err := c.get(ctx, "/needs/"+url.PathEscape(id), &need); err != nil {
		return nil, err
	}
	return &need, nil
}
