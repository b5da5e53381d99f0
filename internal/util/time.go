package util

import (
	"fmt"
	"time"
)

// TimeAgo 返回相对时间文案（feed 卡片展示用）
func TimeAgo(t time.Time, now time.Time) string {
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		m := int(d.Minutes())
		return fmt.Sprintf("%dm ago", m)
	case d < 24*time.Hour:
		h := int(d.Hours())
		return fmt.Sprintf("%dh ago", h)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	case d < 30*24*time.Hour:
		w := int(d.Hours() / 24 / 7)
		return fmt.Sprintf("%dw ago", w)
	case d < 365*24*time.Hour:
		mo := int(d.Hours() / 24 / 30)
		return fmt.Sprintf("%dmo ago", mo)
	default:
		y := int(d.Hours() / 24 / 365)
		return fmt.Sprintf("%dy ago", y)
	}
}

func ClampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// NullableString 空串转 nil，发送端统一用 null 表达"未填写"
func NullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
