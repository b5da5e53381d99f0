package model

import "time"

// MeetingMode 会面方式，二选一，分别要求 link / location 必填
type MeetingMode string

const (
	ModeVideo    MeetingMode = "video"
	ModeInPerson MeetingMode = "in_person"
)

// MeetingDurations 允许的会面时长（分钟）
var MeetingDurations = []int{15, 30, 45, 60}

func ValidDuration(minutes int) bool {
	for _, d := range MeetingDurations {
		if d == minutes {
			return true
		}
	}
	return false
}

// MeetingRequest 提交后不可变
type MeetingRequest struct {
	ToUserID    string      `json:"toUserId"`
	Title       string      `json:"title"`
	Agenda      *string     `json:"agenda"`
	ScheduledAt string      `json:"scheduledAt"` // ISO-8601
	Duration    int         `json:"duration"`
	Timezone    string      `json:"timezone"` // IANA
	Mode        MeetingMode `json:"mode"`
	Location    *string     `json:"location"`
	Link        *string     `json:"link"`
}

// Meeting 服务端返回的会面对象
type Meeting struct {
	ID          string      `json:"id"`
	FromUserID  string      `json:"fromUserId"`
	ToUserID    string      `json:"toUserId"`
	Title       string      `json:"title"`
	Agenda      string      `json:"agenda,omitempty"`
	ScheduledAt time.Time   `json:"scheduledAt"`
	Duration    int         `json:"duration"`
	Timezone    string      `json:"timezone"`
	Mode        MeetingMode `json:"mode"`
	Location    string      `json:"location,omitempty"`
	Link        string      `json:"link,omitempty"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// IsJoinWindow 会前 10 分钟到会议结束之间视为可加入
func IsJoinWindow(m Meeting, now time.Time) bool {
	start := m.ScheduledAt
	end := start.Add(time.Duration(m.Duration) * time.Minute)
	return !now.Before(start.Add(-10*time.Minute)) && now.Before(end)
}
