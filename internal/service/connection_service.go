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

// Action 连接按钮的五种渲染分支
type Action string

const (
	ActionConnected   Action = "connected"    // 已连接，悬浮提供移除入口
	ActionPending     Action = "pending"      // 我方已发出，置灰等待
	ActionRespond     Action = "respond"      // 对方发来申请，跳通知页处理
	ActionLoginPrompt Action = "login_prompt" // 未登录，弹登录引导
	ActionConnect     Action = "connect"      // 可发起连接申请
)

// ResolveAction 纯函数且全定义：任意 status 字符串先归一化再分发，
// 未识别的值走 none 分支（优雅降级，由调用侧记录告警）。
func ResolveAction(status string, loggedIn bool) Action {
	normalized, recognized := model.NormalizeConnectionStatus(status)
	if !recognized {
		logger.Log.Warn("unrecognized connection status, falling back to none",
			zap.String("status", status))
	}

	switch normalized {
	case model.StatusConnected:
		return ActionConnected
	case model.StatusPendingOutgoing:
		return ActionPending
	case model.StatusPendingIncoming:
		return ActionRespond
	default:
		if !loggedIn {
			return ActionLoginPrompt
		}
		return ActionConnect
	}
}

type ConnectionService struct {
	Client *api.Client
}

func NewConnectionService(client *api.Client) *ConnectionService {
	return &ConnectionService{Client: client}
}

// SendRequest reason/message 均可空，空值以 null 上送。
// 失败时返回的 error 携带服务端 message，调用方原样展示并保持表单可重试。
func (s *ConnectionService) SendRequest(ctx context.Context, toUserID, reason, message string) error {
	if !s.Client.LoggedIn() {
		return util.ErrLoginRequired
	}

	req := model.ConnectionRequest{
		ToUserID: toUserID,
		Reason:   util.NullableString(reason),
		Message:  util.NullableString(message),
	}

	if err := s.Client.SendConnectionRequest(ctx, req); err != nil {
		logger.Log.Error("send connection request failed",
			zap.String("toUserId", toUserID), zap.Error(err))
		return err
	}
	return nil
}

// Remove 调用前由 UI 层完成确认弹窗，note 为确认时填写的说明
func (s *ConnectionService) Remove(ctx context.Context, connectionID, note string) error {
	if !s.Client.LoggedIn() {
		return util.ErrLoginRequired
	}

	if err := s.Client.RemoveConnection(ctx, connectionID, note); err != nil {
		logger.Log.Error("remove connection failed",
			zap.String("connectionId", connectionID), zap.Error(err))
		return err
	}
	return nil
}

// ConnectionView 某个对端用户当前的连接状态快照
type ConnectionView struct {
	Status       model.ConnectionStatus
	ConnectionID string
}

// ConnectionController 单个对端用户的连接状态。Send/Remove 为乐观更新：
// 先把状态推进到目标值再发请求，失败精确回滚。只允许乐观方向的推进
// （none→pending_outgoing、connected→none），逆向变化以服务端下发的资料为准。
type ConnectionController struct {
	Service *ConnectionService
	UserID  string

	mu   sync.Mutex
	view ConnectionView
}

// NewController rawStatus 在入口处归一化一次，后续状态机只见规范值
func (s *ConnectionService) NewController(userID, rawStatus, connectionID string) *ConnectionController {
	status, _ := model.NormalizeConnectionStatus(rawStatus)
	return &ConnectionController{
		Service: s,
		UserID:  userID,
		view:    ConnectionView{Status: status, ConnectionID: connectionID},
	}
}

func (c *ConnectionController) View() ConnectionView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *ConnectionController) setView(v ConnectionView) {
	c.mu.Lock()
	c.view = v
	c.mu.Unlock()
}

// Resolve 按当前状态给出渲染分支
func (c *ConnectionController) Resolve(loggedIn bool) Action {
	return ResolveAction(string(c.View().Status), loggedIn)
}

// Send 乐观推进 none→pending_outgoing。发送端点无状态回包，
// 成功即以预测值为准；失败回滚并原样返回服务端错误。
func (c *ConnectionController) Send(ctx context.Context, reason, message string) error {
	if !c.Service.Client.LoggedIn() {
		return util.ErrLoginRequired
	}

	opt := Optimistic[ConnectionView]{Get: c.View, Set: c.setView}
	return opt.Run(ctx,
		func(cur ConnectionView) ConnectionView {
			return ConnectionView{Status: model.StatusPendingOutgoing, ConnectionID: cur.ConnectionID}
		},
		func(ctx context.Context) (ConnectionView, error) {
			if err := c.Service.SendRequest(ctx, c.UserID, reason, message); err != nil {
				return ConnectionView{}, err
			}
			return ConnectionView{Status: model.StatusPendingOutgoing}, nil
		},
	)
}

// Remove 乐观推进 connected→none，连接 ID 随之清空
func (c *ConnectionController) Remove(ctx context.Context, note string) error {
	if !c.Service.Client.LoggedIn() {
		return util.ErrLoginRequired
	}

	connectionID := c.View().ConnectionID
	opt := Optimistic[ConnectionView]{Get: c.View, Set: c.setView}
	return opt.Run(ctx,
		func(ConnectionView) ConnectionView {
			return ConnectionView{Status: model.StatusNone}
		},
		func(ctx context.Context) (ConnectionView, error) {
			if err := c.Service.Remove(ctx, connectionID, note); err != nil {
				return ConnectionView{}, err
			}
			return ConnectionView{Status: model.StatusNone}, nil
		},
	)
}
