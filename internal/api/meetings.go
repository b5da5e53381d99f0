package api

import (
	"context"
	"net/url"

	"links54_client/internal/model"
)

func (c *Client) CreateMeetingRequest(ctx context.Context, req model.MeetingRequest) (*model.Meeting, error) {
	var meeting model.Meeting
	if err := c.post(ctx, "/meeting-requests", req, &meeting); err != nil {
		return nil, err
	}
	return &meeting, nil
}

// ListMeetingRequests otherUserID 为空时返回当前用户全部会面
func (c *Client) ListMeetingRequests(ctx context.Context, otherUserID string) ([]model.Meeting, error) {
	path := "/meeting-requests"
	if otherUserID != "" {
		path += "?userId=" + url.QueryEscape(otherUserID)
	}
	var meetings []model.Meeting
	if err := c.get(ctx, path, &meetings); err != nil {
		return nil, err
	}
	return meetings, nil
}
