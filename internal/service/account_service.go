package service

import (
	"context"

	"links54_client/internal/api"
	"links54_client/internal/model"
	"links54_client/internal/util"
	"links54_client/pkg/logger"

	"go.uber.org/zap"
)

type AccountService struct {
	Client *api.Client
}

func NewAccountService(client *api.Client) *AccountService {
	return &AccountService{Client: client}
}

func (s *AccountService) Block(ctx context.Context, userID string) error {
	if !s.Client.LoggedIn() {
		return util.ErrLoginRequired
	}
	if err := s.Client.BlockUser(ctx, userID); err != nil {
		logger.Log.Error("block user failed", zap.String("userId", userID), zap.Error(err))
		return err
	}
	return nil
}

func (s *AccountService) Unblock(ctx context.Context, userID string) error {
	if !s.Client.LoggedIn() {
		return util.ErrLoginRequired
	}
	if err := s.Client.UnblockUser(ctx, userID); err != nil {
		logger.Log.Error("unblock user failed", zap.String("userId", userID), zap.Error(err))
		return err
	}
	return nil
}

func (s *AccountService) Report(ctx context.Context, targetType, targetID, description string) error {
	if !s.Client.LoggedIn() {
		return util.ErrLoginRequired
	}
	report := model.Report{TargetType: targetType, TargetID: targetID, Description: description}
	if err := s.Client.SubmitReport(ctx, report); err != nil {
		logger.Log.Error("submit report failed",
			zap.String("targetType", targetType), zap.String("targetId", targetID), zap.Error(err))
		return err
	}
	return nil
}

// RequestDeletion 发确认邮件；token 24 小时过期由服务端控制
func (s *AccountService) RequestDeletion(ctx context.Context) error {
	if !s.Client.LoggedIn() {
		return util.ErrLoginRequired
	}
	return s.Client.RequestAccountDeletion(ctx)
}

func (s *AccountService) ConfirmDeletion(ctx context.Context, token string) error {
	return s.Client.ConfirmAccountDeletion(ctx, token)
}
