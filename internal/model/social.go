package model

// EntityType 可点赞/评论的内容类型
type EntityType string

const (
	EntityJob       EntityType = "job"
	EntityNeed      EntityType = "need"
	EntityProduct   EntityType = "product"
	EntityMoment    EntityType = "moment"
	EntityCrowdfund EntityType = "funding_project"
	EntityEvent     EntityType = "event"
)

// LikeState count 永远不会渲染为负数
type LikeState struct {
	Liked bool `json:"liked"`
	Count int  `json:"count"`
}

type Comment struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName,omitempty"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

type UnreadCounts struct {
	Supports int `json:"supports"`
	Contacts int `json:"contacts"`
}
