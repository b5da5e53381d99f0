package service

import (
	"context"
	"sync"

	"links54_client/internal/api"
	"links54_client/internal/model"
	"links54_client/internal/util"
	"links54_client/pkg/logger"

	"go.uber.org/zap"
)

type SocialService struct {
	Client *api.Client
}

func NewSocialService(client *api.Client) *SocialService {
	return &SocialService{Client: client}
}

// LikeController 单个内容项的点赞状态。Toggle 为乐观更新：
// 先翻转本地状态再发请求，成功以服务端值对账，失败精确回滚。
type LikeController struct {
	Service    *SocialService
	EntityType model.EntityType
	EntityID   string

	mu    sync.Mutex
	state model.LikeState
}

func (s *SocialService) NewLikeController(entityType model.EntityType, entityID string, initial model.LikeState) *LikeController {
	return &LikeController{
		Service:    s,
		EntityType: entityType,
		EntityID:   entityID,
		state:      initial,
	}
}

func (c *LikeController) State() model.LikeState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *LikeController) setState(s model.LikeState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Refresh 从服务端拉取权威状态
func (c *LikeController) Refresh(ctx context.Context) error {
	state, err := c.Service.Client.GetLikeStatus(ctx, c.EntityType, c.EntityID)
	if err != nil {
		return err
	}
	c.setState(state)
	return nil
}

// Toggle 未登录直接返回 ErrLoginRequired，不发网络请求。
// 失败静默回滚，不向用户报错（低风险动作的低打扰策略），仅记 debug 日志。
func (c *LikeController) Toggle(ctx context.Context) error {
	if !c.Service.Client.LoggedIn() {
		return util.ErrLoginRequired
	}

	opt := Optimistic[model.LikeState]{Get: c.State, Set: c.setState}

	err := opt.Run(ctx,
		func(cur model.LikeState) model.LikeState {
			next := model.LikeState{Liked: !cur.Liked}
			if next.Liked {
				next.Count = cur.Count + 1
			} else {
				next.Count = util.ClampNonNegative(cur.Count - 1)
			}
			return next
		},
		func(ctx context.Context) (model.LikeState, error) {
			return c.Service.Client.ToggleLike(ctx, c.EntityType, c.EntityID)
		},
	)
	if err != nil {
		logger.Log.Debug("like toggle failed, state reverted",
			zap.String("entityType", string(c.EntityType)),
			zap.String("entityId", c.EntityID),
			zap.Error(err))
	}
	return err
}

// CommentCount 评论数以服务端列表长度为准，本层不做乐观自增
func (s *SocialService) CommentCount(ctx context.Context, entityType model.EntityType, entityID string) (int, error) {
	comments, err := s.Client.ListComments(ctx, entityType, entityID)
	if err != nil {
		return 0, err
	}
	return len(comments), nil
}
