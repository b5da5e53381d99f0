package model

import (
	"strings"
	"time"
)

// ConnectionStatus 连接关系的规范状态（viewer 与 target 之间有且只有一个）
type ConnectionStatus string

const (
	StatusNone            ConnectionStatus = "none"
	StatusPendingOutgoing ConnectionStatus = "pending_outgoing"
	StatusPendingIncoming ConnectionStatus = "pending_incoming"
	StatusConnected       ConnectionStatus = "connected"
)

// statusAliases 历史接口返回过的别名，统一在入口收敛成规范值
var statusAliases = map[string]ConnectionStatus{
	"none":             StatusNone,
	"":                 StatusNone,
	"pending_outgoing": StatusPendingOutgoing,
	"outgoing_pending": StatusPendingOutgoing,
	"pending":          StatusPendingOutgoing,
	"pending_incoming": StatusPendingIncoming,
	"incoming_pending": StatusPendingIncoming,
	"connected":        StatusConnected,
	"accepted":         StatusConnected,
}

// NormalizeConnectionStatus 大小写不敏感；未识别的值降级为 none。
// 第二个返回值标识输入是否被识别，方便调用方记录告警。
func NormalizeConnectionStatus(raw string) (ConnectionStatus, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if s, ok := statusAliases[key]; ok {
		return s, true
	}
	return StatusNone, false
}

// ConnectionReasons 连接申请的预设理由（与后端下拉项一致）
var ConnectionReasons = []string{
	"business_partnership",
	"investment_opportunity",
	"job_opportunity",
	"hiring",
	"mentorship",
	"seeking_mentorship",
	"collaboration",
	"networking",
	"buy_sell",
	"services_needed",
	"services_offered",
	"event_connection",
	"crowdfunding",
	"knowledge_sharing",
	"other",
}

// ConnectionRequest 发送一次后不可变，后续状态以服务端为准
type ConnectionRequest struct {
	ToUserID string  `json:"toUserId"`
	Reason   *string `json:"reason"`
	Message  *string `json:"message"`
}

type Connection struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	OtherID   string           `json:"otherId"`
	Status    ConnectionStatus `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
}

// RemoveConnectionRequest 删除连接时附带的说明
type RemoveConnectionRequest struct {
	Note string `json:"note"`
}
