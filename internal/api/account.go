package api

import (
	"context"
	"net/url"
)

// RequestAccountDeletion 触发删除账号的确认邮件，token 有效期由服务端控制（24h）
func (c *Client) RequestAccountDeletion(ctx context.Context) error {
	return c.post(ctx, "/auth/delete-account", nil, nil)
}

func (c *Client) ConfirmAccountDeletion(ctx context.Context, token string) error {
	return c.post(ctx, "/auth/delete-account/"+url.PathEscape(token), nil, nil)
}
