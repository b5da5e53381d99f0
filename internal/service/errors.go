package service

import (
	"errors"

	"links54_client/internal/api"
	"links54_client/internal/util"
)

// DisplayError 把错误转成可直接展示的文案：
// 本地哨兵错误用固定提示，网络错误优先取服务端 message，否则通用兜底。
func DisplayError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, util.ErrLoginRequired):
		return "Please log in to continue."
	case errors.Is(err, util.ErrValidationFailed):
		return "Please fix the highlighted fields."
	case errors.Is(err, util.ErrSubmitInFlight):
		return "Still sending, hold on."
	default:
		return api.ErrorMessage(err)
	}
}
