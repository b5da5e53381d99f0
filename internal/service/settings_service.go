package service

import (
	"context"

	"links54_client/internal/api"
	"links54_client/internal/model"
	"links54_client/internal/util"
	"links54_client/pkg/logger"

	"go.uber.org/zap"
)

type SettingsService struct {
	Client *api.Client
}

func NewSettingsService(client *api.Client) *SettingsService {
	return &SettingsService{Client: client}
}

func (s *SettingsService) Get(ctx context.Context) (*model.Settings, error) {
	if !s.Client.LoggedIn() {
		return nil, util.ErrLoginRequired
	}
	return s.Client.GetSettings(ctx)
}

// Update notifications 字段由 model.Settings 负责序列化为 JSON 字符串
func (s *SettingsService) Update(ctx context.Context, settings model.Settings) error {
	if !s.Client.LoggedIn() {
		return util.ErrLoginRequired
	}
	if err := s.Client.UpdateSettings(ctx, settings); err != nil {
		logger.Log.Error("update settings failed", zap.Error(err))
		return err
	}
	return nil
}
