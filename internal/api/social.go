package api

import (
	"context"
	"fmt"
	"net/url"

	"links54_client/internal/model"
)

func socialPath(entityType model.EntityType, entityID, leaf string) string {
	return fmt.Sprintf("/social/%s/%s/%s", url.PathEscape(string(entityType)), url.PathEscape(entityID), leaf)
}

func (c *Client) GetLikeStatus(ctx context.Context, entityType model.EntityType, entityID string) (model.LikeState, error) {
	var state model.LikeState
	err := c.get(ctx, socialPath(entityType, entityID, "like"), &state)
	return state, err
}

// ToggleLike 返回服务端的权威 {liked, count}
func (c *Client) ToggleLike(ctx context.Context, entityType model.EntityType, entityID string) (model.LikeState, error) {
	var state model.LikeState
	err := c.post(ctx, socialPath(entityType, entityID, "like"), nil, &state)
	return state, err
}

func (c *Client) ListComments(ctx context.Context, entityType model.EntityType, entityID string) ([]model.Comment, error) {
	var comments []model.Comment
	if err := c.get(ctx, socialPath(entityType, entityID, "comments"), &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Client) GetUnreadCounts(ctx context.Context) (model.UnreadCounts, error) {
	var counts model.UnreadCounts
	err := c.get(ctx, "/notifications/unread-counts", &counts)
	return counts, err
}
