package model

import "encoding/json"

// NotificationPrefs settings 接口里以 JSON 字符串形式往返的通知偏好
type NotificationPrefs struct {
	EmailOnConnection bool `json:"emailOnConnection"`
	EmailOnMeeting    bool `json:"emailOnMeeting"`
	EmailDigest       bool `json:"emailDigest"`
	PushEnabled       bool `json:"pushEnabled"`
}

// Settings GET 时 notifications 为 JSON 字符串，PUT 前需重新序列化
type Settings struct {
	Language      string            `json:"language,omitempty"`
	Visibility    string            `json:"visibility,omitempty"`
	Notifications NotificationPrefs `json:"-"`
}

// settingsWire notifications 的线上形态是字符串，这里做编解码桥接
type settingsWire struct {
	Language      string `json:"language,omitempty"`
	Visibility    string `json:"visibility,omitempty"`
	Notifications string `json:"notifications"`
}

func (s Settings) MarshalJSON() ([]byte, error) {
	n, err := json.Marshal(s.Notifications)
	if err != nil {
		return nil, err
	}
	return json.Marshal(settingsWire{
		Language:      s.Language,
		Visibility:    s.Visibility,
		Notifications: string(n),
	})
}

func (s *Settings) UnmarshalJSON(data []byte) error {
	var w settingsWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	s.Language = w.Language
	s.Visibility = w.Visibility
	if w.Notifications != "" {
		if err := json.Unmarshal([]byte(w.Notifications), &s.Notifications); err != nil {
			// 解析失败按默认偏好处理，不让坏数据阻塞整个设置页
			s.Notifications = NotificationPrefs{}
		}
	}
	return nil
}

// Report 举报载荷
type Report struct {
	TargetType  string `json:"targetType"`
	TargetID    string `json:"targetId"`
	Description string `json:"description"`
}
