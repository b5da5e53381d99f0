package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"links54_client/internal/api"
	"links54_client/internal/model"
	"links54_client/internal/store"
	"links54_client/internal/util"
	"links54_client/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MeetingForm 会面申请表单。date/time 分开录入，提交时合成本地时区的 ISO 时间。
type MeetingForm struct {
	Date     string // YYYY-MM-DD
	Time     string // HH:MM
	Duration int    // 分钟，15/30/45/60
	Mode     model.MeetingMode
	Location string
	Link     string
	Title    string
	Agenda   string
	Timezone string // IANA，空则取本地时区
}

// Validate 返回 field -> 错误文案；map 为空才允许提交。
// 必填：date、time、title；video 必填 link，in_person 必填 location。
func (f MeetingForm) Validate() map[string]string {
	errs := map[string]string{}

	if f.Date == "" {
		errs["date"] = "Date is required"
	}
	if f.Time == "" {
		errs["time"] = "Time is required"
	}
	if f.Title == "" {
		errs["title"] = "Title is required"
	}

	switch f.Mode {
	case model.ModeVideo:
		if f.Link == "" {
			errs["link"] = "Meeting link is required for video meetings"
		}
	case model.ModeInPerson:
		if f.Location == "" {
			errs["location"] = "Location is required for in-person meetings"
		}
	default:
		errs["mode"] = "Meeting mode must be video or in_person"
	}

	if f.Duration != 0 && !model.ValidDuration(f.Duration) {
		errs["duration"] = "Duration must be one of 15, 30, 45, 60 minutes"
	}

	return errs
}

// ComposeScheduledAt 以 loc 解释 date+time（对应浏览器本地时区构造），输出 UTC 的 RFC3339
func ComposeScheduledAt(date, clock string, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation("2006-01-02T15:04:05", fmt.Sprintf("%sT%s:00", date, clock), loc)
	if err != nil {
		return "", err
	}
	return t.UTC().Format("2006-01-02T15:04:05.000Z"), nil
}

type MeetingService struct {
	Client *api.Client
	Store  *store.Local
	UserID string // 当前登录用户，用于本地缓存键

	submitting atomic.Bool
}

func NewMeetingService(client *api.Client, local *store.Local, userID string) *MeetingService {
	return &MeetingService{Client: client, Store: local, UserID: userID}
}

// InFlight 提交期间为 true，UI 据此禁用提交按钮。
// 只防单击连点，不提供网络层幂等。
func (s *MeetingService) InFlight() bool {
	return s.submitting.Load()
}

// Submit 校验通过后合成载荷上送；重复提交会创建新的申请。
// mode 未用到的字段（video 的 location / in_person 的 link）以 null 上送。
func (s *MeetingService) Submit(ctx context.Context, toUserID string, form MeetingForm) (*model.Meeting, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, util.ErrValidationFailed
	}

	if !s.submitting.CompareAndSwap(false, true) {
		return nil, util.ErrSubmitInFlight
	}
	defer s.submitting.Store(false)

	loc := time.Local
	tz := form.Timezone
	if tz == "" {
		tz = loc.String()
	} else if parsed, err := time.LoadLocation(tz); err == nil {
		loc = parsed
	}

	scheduledAt, err := ComposeScheduledAt(form.Date, form.Time, loc)
	if err != nil {
		return nil, err
	}

	duration := form.Duration
	if duration == 0 {
		duration = 30
	}

	req := model.MeetingRequest{
		ToUserID:    toUserID,
		Title:       form.Title,
		Agenda:      util.NullableString(form.Agenda),
		ScheduledAt: scheduledAt,
		Duration:    duration,
		Timezone:    tz,
		Mode:        form.Mode,
	}
	switch form.Mode {
	case model.ModeVideo:
		req.Link = util.NullableString(form.Link)
		req.Location = nil
	case model.ModeInPerson:
		req.Location = util.NullableString(form.Location)
		req.Link = nil
	}

	meeting, err := s.Client.CreateMeetingRequest(ctx, req)
	if err != nil {
		logger.Log.Error("create meeting request failed",
			zap.String("toUserId", toUserID), zap.Error(err))
		return nil, err
	}

	// 演示缓存：写本地兜底列表，读取时仅在服务端不可用才使用
	if s.Store != nil {
		cached := *meeting
		if cached.ID == "" {
			cached.ID = uuid.New().String()
		}
		key := store.MeetingCacheKey(s.UserID, toUserID)
		if err := s.Store.AppendMeeting(key, cached); err != nil {
			logger.Log.Debug("meeting cache write failed", zap.Error(err))
		}
	}

	return meeting, nil
}

// List 服务端优先；失败时回退本地 sim_meetings 缓存（非权威）
func (s *MeetingService) List(ctx context.Context, otherUserID string) ([]model.Meeting, bool, error) {
	meetings, err := s.Client.ListMeetingRequests(ctx, otherUserID)
	if err == nil {
		return meetings, false, nil
	}

	if s.Store != nil {
		key := store.MeetingCacheKey(s.UserID, otherUserID)
		cached, cacheErr := s.Store.LoadMeetings(key)
		if cacheErr == nil && len(cached) > 0 {
			logger.Log.Warn("meeting list unavailable, serving local cache",
				zap.String("otherUserId", otherUserID), zap.Error(err))
			return cached, true, nil
		}
	}

	return nil, false, err
}
