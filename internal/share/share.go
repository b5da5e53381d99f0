package share

import (
	"fmt"
	"net/url"
)

// Content 被分享内容的三要素
type Content struct {
	URL   string
	Title string
	Quote string
}

// Target 数据驱动的分享目标表，替代散落在各卡片里的重复拼接逻辑
type Target struct {
	Platform string
	Build    func(c Content) string
}

var Targets = []Target{
	{
		Platform: "whatsapp",
		Build: func(c Content) string {
			text := c.Title
			if c.Quote != "" {
				text = c.Title + " — " + c.Quote
			}
			return "https://wa.me/?text=" + url.QueryEscape(text+" "+c.URL)
		},
	},
	{
		Platform: "linkedin",
		Build: func(c Content) string {
			return "https://www.linkedin.com/sharing/share-offsite/?url=" + url.QueryEscape(c.URL)
		},
	},
	{
		Platform: "twitter",
		Build: func(c Content) string {
			return fmt.Sprintf("https://twitter.com/intent/tweet?url=%s&text=%s",
				url.QueryEscape(c.URL), url.QueryEscape(c.Title))
		},
	},
	{
		Platform: "facebook",
		Build: func(c Content) string {
			return fmt.Sprintf("https://www.facebook.com/sharer/sharer.php?u=%s&quote=%s",
				url.QueryEscape(c.URL), url.QueryEscape(c.Quote))
		},
	},
	{
		Platform: "telegram",
		Build: func(c Content) string {
			return fmt.Sprintf("https://t.me/share/url?url=%s&text=%s",
				url.QueryEscape(c.URL), url.QueryEscape(c.Title))
		},
	},
	{
		Platform: "email",
		Build: func(c Content) string {
			body := c.Quote
			if body != "" {
				body += "\n\n"
			}
			return fmt.Sprintf("mailto:?subject=%s&body=%s",
				url.QueryEscape(c.Title), url.QueryEscape(body+c.URL))
		},
	},
}

// LinkFor 未知平台返回空串
func LinkFor(platform string, c Content) string {
	for _, t := range Targets {
		if t.Platform == platform {
			return t.Build(c)
		}
	}
	return ""
}
